package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/diillson/fraud-dashboard-go/internal/shared/types"
)

const shutdownTimeout = 10 * time.Second

// NewRouter monta as rotas e a cadeia de middlewares.
func NewRouter(cfg types.ServerConfig, data Dataset, log zerolog.Logger) http.Handler {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	limit := rate.Limit(cfg.RateLimitPerSecond)
	if cfg.RateLimitPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}

	h := NewHandler(data, ttl)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))
	r.Use(CORS(cfg.AllowedOrigins))
	r.Use(RateLimit(rate.NewLimiter(limit, burst)))

	r.Get("/", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", h.Options)
		r.Get("/dataset", h.DatasetStatus)
		r.Post("/dataset/full", h.LoadFull)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/views/{name}", h.View)
	})

	return r
}

// Serve atende requisições até o contexto ser cancelado e então encerra o servidor.
func Serve(ctx context.Context, addr string, handler http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
