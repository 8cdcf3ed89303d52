package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"

	"github.com/tripnest/inputguard/pkg/bodyguard"
	"github.com/tripnest/inputguard/pkg/clientip"
	"github.com/tripnest/inputguard/pkg/httpserver"
	"github.com/tripnest/inputguard/pkg/logger"
	"github.com/tripnest/inputguard/pkg/requestid"
	"github.com/tripnest/inputguard/pkg/sanitizer"
)

// Config wires the router. Zero values get sensible defaults.
type Config struct {
	Sanitizer    *sanitizer.Sanitizer
	Policy       *sanitizer.Policy
	Metrics      *Metrics
	Logger       *slog.Logger
	MaxBodySize  int64
	RateLimitRPM int
	CORSOrigins  []string
	// IPHeaders lists proxy headers trusted for the client address.
	IPHeaders []string
}

// NewRouter builds the service routes:
//
//	GET  /health
//	GET  /metrics
//	POST /v1/validate
//	POST /v1/detect
//	POST /v1/sanitize?fields=a,b
//	POST /v1/policy/apply   (only with a policy)
func NewRouter(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.Sanitizer == nil {
		cfg.Sanitizer = sanitizer.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = bodyguard.DefaultMaxBodySize
	}

	h := &handlers{
		engine:      cfg.Sanitizer,
		log:         cfg.Logger,
		metrics:     cfg.Metrics,
		maxBodySize: cfg.MaxBodySize,
	}

	ips := clientip.New(cfg.IPHeaders...)

	r := chi.NewRouter()
	r.Use(requestid.New(requestid.WithLogger(cfg.Logger)))
	r.Use(ips.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cfg.Metrics.Instrument)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", requestid.Header},
			ExposedHeaders: []string{requestid.Header},
			MaxAge:         600,
		}).Handler)
	}
	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	r.Get("/health", httpserver.HealthCheckHandler(cfg.Logger))
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	guard := func(opts ...bodyguard.Option) func(http.Handler) http.Handler {
		base := []bodyguard.Option{
			bodyguard.WithSanitizer(cfg.Sanitizer),
			bodyguard.WithLogger(cfg.Logger),
			bodyguard.WithMaxBodySize(cfg.MaxBodySize),
			bodyguard.WithErrorHandler(h.fail),
		}
		return bodyguard.New(append(base, opts...)...)
	}

	r.Route("/v1", func(r chi.Router) {
		if cfg.RateLimitRPM > 0 {
			r.Use(rateLimit(cfg.RateLimitRPM, ips, cfg.Logger, cfg.Metrics))
		}
		r.Post("/validate", h.validate)
		r.Post("/detect", h.detect)
		r.With(guard(bodyguard.WithAllowedFieldsFunc(fieldsFromQuery))).Post("/sanitize", h.sanitized)
		if cfg.Policy != nil {
			r.With(guard(bodyguard.WithPolicy(cfg.Policy))).Post("/policy/apply", h.sanitized)
		}
	})

	return r
}

func rateLimit(rpm int, ips *clientip.Resolver, log *slog.Logger, m *Metrics) func(http.Handler) http.Handler {
	return httprate.Limit(rpm, time.Minute,
		httprate.WithKeyFuncs(ips.Key),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			m.RateLimitedHits.Inc()
			log.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("path", r.URL.Path),
				logger.Truncated("user_agent", r.UserAgent()),
			)
			writeJSON(w, http.StatusTooManyRequests, Envelope{Error: &ErrorDetail{
				Code:    "rate_limited",
				Message: "rate limit exceeded, retry later",
			}})
		}),
	)
}
