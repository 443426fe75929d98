package providers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookshelf-server/internal/api"
	"github.com/listenupapp/bookshelf-server/internal/config"
	"github.com/listenupapp/bookshelf-server/internal/logger"
	"github.com/listenupapp/bookshelf-server/internal/ratelimit"
	"github.com/listenupapp/bookshelf-server/internal/service"
)

// RateLimiterHandle wraps the keyed limiter so its cleanup goroutine stops on shutdown.
// Limiter is nil when rate limiting is disabled.
type RateLimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdowner.
func (h *RateLimiterHandle) Shutdown() error {
	if h.Limiter != nil {
		h.Limiter.Stop()
	}
	return nil
}

// ProvideRateLimiter provides the per-client API rate limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled {
		log.Info("API rate limiting disabled by configuration")
		return &RateLimiterHandle{}, nil
	}

	return &RateLimiterHandle{
		Limiter: ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	}, nil
}

// ProvideAPIServer builds the HTTP handler with every service attached.
func ProvideAPIServer(i do.Injector) (*api.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	limiter := do.MustInvoke[*RateLimiterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Book:           do.MustInvoke[*service.BookService](i),
		List:           do.MustInvoke[*service.ListService](i),
		Recommendation: do.MustInvoke[*service.RecommendationService](i),
		Tagging:        do.MustInvoke[*service.TaggingService](i),
		Share:          do.MustInvoke[*service.ShareService](i),
		Search:         do.MustInvoke[*service.SearchService](i),
	}

	return api.NewServer(storeHandle.Store, services, api.Options{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		RateLimiter:        limiter.Limiter,
	}, log.Component("api")), nil
}

// HTTPServerHandle wraps http.Server with Shutdowner.
type HTTPServerHandle struct {
	*http.Server
	listener        net.Listener
	shutdownTimeout time.Duration
}

// ListenAddr returns the address the server is listening on.
func (h *HTTPServerHandle) ListenAddr() string {
	return h.listener.Addr().String()
}

// Shutdown implements do.Shutdowner.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer starts the HTTP server in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	handler := do.MustInvoke[*api.Server](i)
	log := do.MustInvoke[*logger.Logger](i)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", ln.Addr().String())

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &HTTPServerHandle{Server: srv, listener: ln, shutdownTimeout: timeout}, nil
}
