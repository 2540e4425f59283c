package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/skillswap/skillswap-be/internal/api/handlers"
	"github.com/skillswap/skillswap-be/internal/auth"
	"github.com/skillswap/skillswap-be/internal/config"
	"github.com/skillswap/skillswap-be/internal/ratelimit"
	"github.com/skillswap/skillswap-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	tokens *auth.Tokens,
	userService services.UserServiceProvider,
	swapService services.SwapServiceProvider,
	signupLimiter *ratelimit.Limiter,
	signinLimiter *ratelimit.Limiter,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for the credentialed SPA frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	secure := cfg.IsProduction()
	authHandler := handlers.NewAuthHandler(userService, tokens, cfg.CookieName, secure)
	userHandler := handlers.NewUserHandler(userService)
	swapHandler := handlers.NewSwapHandler(swapService)

	requireAuth := auth.Required(tokens, cfg.CookieName)
	optionalAuth := auth.Optional(tokens, cfg.CookieName)

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(signupLimiter.Middleware).Post("/signup", authHandler.Signup)
			r.With(signinLimiter.Middleware).Post("/signin", authHandler.Signin)
			r.With(optionalAuth).Get("/me", authHandler.Me)
			r.Post("/signout", authHandler.Signout)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(optionalAuth).Get("/", userHandler.Search)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/{id}", userHandler.Get)
				r.Patch("/{id}", userHandler.Update)
			})
		})

		r.Get("/skills", userHandler.Skills)

		r.Route("/swaps", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", swapHandler.Create)
			r.Get("/mine", swapHandler.ListMine)
			r.Patch("/{id}", swapHandler.Transition)
		})
	})

	return r
}
