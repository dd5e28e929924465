package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jalmosquera/digitalletter/pkg/health"
	"github.com/jalmosquera/digitalletter/pkg/middleware"
)

const serviceName = "digitalletter"

// NewRouter assembles the HTTP surface: health and metrics outside the
// session guard, the cart and checkout API behind it.
func NewRouter(
	cartHandler *CartHandler,
	checkoutHandler *CheckoutHandler,
	healthHandler *health.Handler,
	corsCfg middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.CORS(corsCfg))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionFromHeader)
		r.Use(ContentTypeJSON)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)

			r.Route("/items", func(r chi.Router) {
				r.Post("/", cartHandler.AddItem)

				r.Route("/{lineID}", func(r chi.Router) {
					r.Put("/", cartHandler.SetQuantity)
					r.Delete("/", cartHandler.RemoveLine)
					r.Post("/increment", cartHandler.Increment)
					r.Post("/decrement", cartHandler.Decrement)
				})
			})
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Submit)
			r.Post("/preview", checkoutHandler.Preview)
		})
	})

	return r
}
