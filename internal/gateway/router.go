package gateway

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	catalogapp "github.com/al1ce23/shitshop/internal/catalog/app"
	orderapp "github.com/al1ce23/shitshop/internal/order/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ProductImageRoute is where catalog images are served from when the
// catalog lives on local disk.
const ProductImageRoute = "/products"

type Options struct {
	// CatalogDir is served under ProductImageRoute; empty disables it.
	CatalogDir string
	// PublicDir holds the static client; a missing directory is skipped.
	PublicDir string

	CORSOrigins []string

	// TrustedProxies are addresses or CIDR prefixes whose X-Forwarded-For
	// is believed when keying the order rate limit.
	TrustedProxies []string

	OrderRatePerMinute float64
	OrderRateBurst     int
	MaxBodyBytes       int64
}

type Handler struct {
	catalog *catalogapp.Service
	orders  *orderapp.Service
	log     *slog.Logger
	opts    Options
}

func NewHandler(catalog *catalogapp.Service, orders *orderapp.Service, log *slog.Logger, opts Options) *Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 100 << 10
	}
	return &Handler{catalog: catalog, orders: orders, log: log, opts: opts}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(accessLog(h.log))
	r.Use(middleware.Recoverer)

	if len(h.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	trusted, err := parseTrustedProxies(h.opts.TrustedProxies)
	if err != nil {
		h.log.Warn("ignoring trusted proxies", slog.Any("err", err))
		trusted = nil
	}
	limiter := newIPLimiter(h.opts.OrderRatePerMinute, h.opts.OrderRateBurst, trusted)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.With(limiter.middleware).Post("/order", h.submitOrder)
	})

	if h.opts.CatalogDir != "" {
		r.Handle(ProductImageRoute+"/*", http.StripPrefix(ProductImageRoute, http.FileServer(http.Dir(h.opts.CatalogDir))))
	}
	if fi, err := os.Stat(h.opts.PublicDir); err == nil && fi.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(h.opts.PublicDir)))
	}
	return r
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("http request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("duration", time.Since(start)),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
