package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/fieldservice-api/internal/config"
	"github.com/straye-as/fieldservice-api/internal/http/handler"
	"github.com/straye-as/fieldservice-api/internal/http/middleware"
	"github.com/straye-as/fieldservice-api/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/straye-as/fieldservice-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	metrics           *metrics.Registry
	rateLimiter       *middleware.RateLimiter
	customerHandler   *handler.CustomerHandler
	technicianHandler *handler.TechnicianHandler
	quoteHandler      *handler.QuoteHandler
	jobHandler        *handler.JobHandler
	invoiceHandler    *handler.InvoiceHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *metrics.Registry,
	rateLimiter *middleware.RateLimiter,
	customerHandler *handler.CustomerHandler,
	technicianHandler *handler.TechnicianHandler,
	quoteHandler *handler.QuoteHandler,
	jobHandler *handler.JobHandler,
	invoiceHandler *handler.InvoiceHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		metrics:           metrics,
		rateLimiter:       rateLimiter,
		customerHandler:   customerHandler,
		technicianHandler: technicianHandler,
		quoteHandler:      quoteHandler,
		jobHandler:        jobHandler,
		invoiceHandler:    invoiceHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Metrics(rt.metrics))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Every unmatched method and path answers the same way
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.NotFound)

	r.Get("/health", handler.Health)

	if rt.cfg.Metrics.Enabled && rt.metrics != nil {
		r.Method(http.MethodGet, rt.cfg.Metrics.Path, rt.metrics.Handler())
	}

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api", func(r chi.Router) {
		// Customers
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", rt.customerHandler.List)
			r.Post("/", rt.customerHandler.Create)
			r.Get("/{id}", rt.customerHandler.GetByID)
		})

		// Technicians
		r.Route("/technicians", func(r chi.Router) {
			r.Get("/", rt.technicianHandler.List)
			r.Post("/", rt.technicianHandler.Create)
			r.Get("/{id}", rt.technicianHandler.GetByID)
		})

		// Quotes
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", rt.quoteHandler.List)
			r.Post("/", rt.quoteHandler.Create)
			r.Get("/{id}", rt.quoteHandler.GetByID)

			// Lifecycle endpoints
			r.Post("/{id}/approve", rt.quoteHandler.Approve)
			r.Post("/{id}/convert", rt.quoteHandler.Convert)
		})

		// Jobs
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", rt.jobHandler.List)
			r.Post("/", rt.jobHandler.Create)
			r.Get("/{id}", rt.jobHandler.GetByID)

			// Lifecycle endpoints
			r.Post("/{id}/assign", rt.jobHandler.AssignTechnician)
			r.Post("/{id}/complete", rt.jobHandler.Complete)
			r.Post("/{id}/invoice", rt.jobHandler.Invoice)
		})

		// Invoices
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", rt.invoiceHandler.List)
			r.Get("/{id}", rt.invoiceHandler.GetByID)
		})
	})

	return r
}
