package http

import (
	"net/http"

	"product-catalog/internal/delivery/http/handler"
	"product-catalog/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

type Router struct {
	router         *mux.Router
	log            *logrus.Logger
	tracerProvider trace.TracerProvider
	productHandler *handler.ProductHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

// NewRouter wires the routes. authMiddleware may be nil, in which case the
// mutating product routes are public.
func NewRouter(
	log *logrus.Logger,
	tracerProvider trace.TracerProvider,
	productHandler *handler.ProductHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		log:            log,
		tracerProvider: tracerProvider,
		productHandler: productHandler,
		healthHandler:  healthHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

// Setup registers the routes and wraps the whole router in the middleware
// chain, so unmatched requests and CORS preflights pass through it as well.
func (r *Router) Setup() http.Handler {
	// Health check
	r.router.Handle("/health", r.healthHandler).Methods(http.MethodGet)

	// Product reads (public)
	products := r.router.PathPrefix(handler.ProductsPath).Subrouter()
	products.HandleFunc("", r.productHandler.List).Methods(http.MethodGet)
	products.HandleFunc("/{id}", r.productHandler.Get).Methods(http.MethodGet)

	// Product writes, guarded when auth is configured
	writes := r.router.PathPrefix(handler.ProductsPath).Subrouter()
	if r.authMiddleware != nil {
		writes.Use(r.authMiddleware.Authenticate)
	}
	writes.HandleFunc("", r.productHandler.Create).Methods(http.MethodPost)
	writes.HandleFunc("/{id}", r.productHandler.Update).Methods(http.MethodPut)
	writes.HandleFunc("/{id}", r.productHandler.Delete).Methods(http.MethodDelete)

	var h http.Handler = r.router
	h = r.corsMiddleware.Handle(h)
	h = middleware.Logger(r.log)(h)
	h = middleware.Tracing(r.tracerProvider)(h)

	return h
}
