package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/localgit/localgit/internal/archive"
	"github.com/localgit/localgit/internal/config"
	"github.com/localgit/localgit/internal/gitrepo"
	"github.com/localgit/localgit/internal/resolver"
)

// StartResult reports the ports the listeners actually bound to (spec.md
// §6.3); -1 signals a disabled listener.
type StartResult struct {
	HTTPPort  int
	HTTPSPort int
}

// NewRouter builds the chi.Router implementing every route in spec.md
// §6.1: subdomain-rewrite middleware first, then request logging, then
// route handlers.
func NewRouter(cfg *config.EffectiveConfig, log *slog.Logger) http.Handler {
	virtual := make([]resolver.VirtualRepo, 0)
	for owner, repos := range cfg.VirtualRepos {
		for repo, path := range repos {
			virtual = append(virtual, resolver.VirtualRepo{Owner: owner, Repo: repo, Path: path})
		}
	}

	h := &handle{
		cfg:      cfg,
		resolver: resolver.New(cfg.RepoRoot, virtual),
		log:      log,
		openRepo: func(path string) (gitrepo.Repository, error) { return gitrepo.Open(path) },
	}

	cacheDir := cfg.Logs.LogsDir
	if cacheDir == "" {
		cacheDir = "."
	}
	producer, err := archive.NewProducer(cacheDir + "/.archive-cache")
	if err != nil {
		log.Warn("archive cache unavailable, archives will not be cached", "error", err)
	}
	h.archive = producer

	r := chi.NewRouter()
	r.Use(subdomainRewrite(cfg))
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	mountRawRoutes(r, h)
	mountGitRoutes(r, h)
	mountAPIRoutes(r, h)
	mountCodeloadRoutes(r, h)
	mountHTMLRoutes(r, h)

	return r
}

// Start binds the HTTP listener (required) and the HTTPS listener (when
// configured), serving NewRouter's handler on both. port: 0 binds an
// ephemeral port; the bound port is reported back (spec.md §6.3).
func Start(ctx context.Context, cfg *config.EffectiveConfig, log *slog.Logger) (StartResult, error) {
	handler := NewRouter(cfg, log)
	result := StartResult{HTTPPort: -1, HTTPSPort: -1}

	httpLn, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port))
	if err != nil {
		return result, fmt.Errorf("httpserver: bind http listener: %w", err)
	}
	result.HTTPPort = httpLn.Addr().(*net.TCPAddr).Port

	httpSrv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	go serve(ctx, log, "http", httpSrv, httpLn)

	if cfg.HTTPS != nil {
		cert, key, err := ensureCertificate(cfg.HTTPS)
		if err != nil {
			return result, fmt.Errorf("httpserver: prepare https cert: %w", err)
		}

		httpsLn, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.HTTPS.Host, cfg.HTTPS.Port))
		if err != nil {
			return result, fmt.Errorf("httpserver: bind https listener: %w", err)
		}
		result.HTTPSPort = httpsLn.Addr().(*net.TCPAddr).Port

		httpsSrv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
		go serveTLS(ctx, log, httpsSrv, httpsLn, cert, key)
	}

	return result, nil
}

func serve(ctx context.Context, log *slog.Logger, name string, srv *http.Server, ln net.Listener) {
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Error("listener stopped", "listener", name, "error", err)
	}
}

func serveTLS(ctx context.Context, log *slog.Logger, srv *http.Server, ln net.Listener, certFile, keyFile string) {
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	if err := srv.ServeTLS(ln, certFile, keyFile); err != nil && err != http.ErrServerClosed {
		log.Error("listener stopped", "listener", "https", "error", err)
	}
}
