package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"

	"reviro_api/internal/api/handler"
	"reviro_api/internal/api/middleware"
	"reviro_api/internal/app/service"
	"reviro_api/internal/common/security"
)

func NewRouter(
	codec *security.TokenCodec,
	authMW *middleware.AuthMiddleware,
	authService *service.AuthService,
	companyService *service.CompanyService,
	productService *service.ProductService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Parses a bearer token when present and puts the result in context.
	// Enforcement happens in middleware.AuthMiddleware on protected groups.
	r.Use(jwtauth.Verifier(codec.Auth()))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (register/token are public; refresh/logout carry the
		// refresh token themselves)
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Company routes (reads public, writes admin) with product routes
		// nested under their company
		companyHandler := handler.NewCompanyHandler(companyService, authMW)
		productHandler := handler.NewProductHandler(productService, authMW)
		v1.Route("/companies", func(companies chi.Router) {
			companyHandler.RegisterRoutes(companies)
			companies.Route("/{companyID}/products", productHandler.RegisterRoutes)
		})
	})

	return r
}
