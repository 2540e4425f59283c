package auth

import (
	"context"
	"net/http"
)

type contextKey string

// userIDKey is the context key under which middleware stores the caller id.
const userIDKey = contextKey("userID")

// UserID returns the authenticated caller's id from the request context,
// or "" when the request carried no valid token.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the caller id. Exposed for tests.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// Required returns middleware that rejects requests without a valid session
// token and attaches the caller id to the context otherwise.
func Required(tokens *Tokens, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := FromRequest(r, cookieName)
			if tokenStr == "" {
				unauthorized(w)
				return
			}
			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// Optional returns middleware that attaches the caller id when a valid
// token is present and passes the request through untouched otherwise.
// Used by endpoints that personalize results but don't require login.
func Optional(tokens *Tokens, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenStr := FromRequest(r, cookieName); tokenStr != "" {
				if userID, err := tokens.Verify(tokenStr); err == nil {
					r = r.WithContext(WithUserID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Unauthorized"}`))
}
