package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"valid", "Ada Lovelace", "Ada Lovelace", false},
		{"trims whitespace", "  Ada Lovelace  ", "Ada Lovelace", false},
		{"empty", "", "", true},
		{"only spaces", "   ", "", true},
		{"too short", "A", "", true},
		{"two chars ok", "Al", "Al", false},
		{"too long", strings.Repeat("a", 81), "", true},
		{"eighty chars ok", strings.Repeat("a", 80), strings.Repeat("a", 80), false},
		{"eighty multibyte chars ok", strings.Repeat("ä", 80), strings.Repeat("ä", 80), false},
		{"one multibyte char too short", "ä", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FullName(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"valid", "ada@example.com", "ada@example.com", false},
		{"normalizes case", "Ada@Example.COM", "ada@example.com", false},
		{"trims whitespace", "  ada@example.com ", "ada@example.com", false},
		{"subdomain", "ada@mail.example.co.uk", "ada@mail.example.co.uk", false},
		{"plus tag", "ada+tag@example.com", "ada+tag@example.com", false},
		{"missing at", "ada.example.com", "", true},
		{"missing domain dot", "ada@example", "", true},
		{"missing local part", "@example.com", "", true},
		{"spaces inside", "ada lovelace@example.com", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Email(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"valid", "Str0ng!pass", ""},
		{"valid multibyte", "Пароль1!", ""},
		{"too short", "S0rt!ab", "at least 8 characters"},
		{"seven multibyte runes too short", "Пас1!Аб", "at least 8 characters"},
		{"no lowercase", "STRONG0!PASS", "lowercase"},
		{"no uppercase", "str0ng!pass", "uppercase"},
		{"no digit", "Strong!pass", "number"},
		{"no symbol", "Str0ngpass", "symbol"},
		{"underscore is not a symbol", "Str0ng_pass", "symbol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.in)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
