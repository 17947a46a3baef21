// Package sdk provides a public Go API for embedding localgit in another
// program. It supports both a blocking Serve call and a non-blocking Start
// call that returns a handle for programmatic shutdown.
//
// Basic usage:
//
//	srv, err := sdk.Start(ctx, sdk.Options{
//	    RepoRoot: "/srv/repos",
//	    HTTPPort: 8080,
//	})
//	fmt.Println(srv.HTTPPort()) // bound port
//	defer srv.Shutdown(context.Background())
package sdk

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/localgit/localgit/internal/config"
	"github.com/localgit/localgit/internal/httpserver"
)

// RawRequestEvent is reported to Options.OnRawRequest whenever a raw-content
// request is served. It is the one piece of configuration this package
// carries that has no YAML representation (see internal/config's Builder
// doc comment) — callers embedding localgit as a library are the only ones
// who can supply a Go func value here.
type RawRequestEvent = config.RawRequestEvent

// Options configures an embedded localgit server.
type Options struct {
	// RepoRoot is the directory under which owner/repo paths are resolved.
	// Defaults to "./repos" if empty.
	RepoRoot string

	// ConfigPath is an optional YAML config file layered under these
	// Options (Options fields take precedence over the file).
	ConfigPath string

	// VirtualRepos maps owner -> repo -> absolute path, for repositories
	// that live outside RepoRoot.
	VirtualRepos map[string]map[string]string

	// HTTPPort is the plaintext listen port. 0 binds an ephemeral port.
	HTTPPort int
	// HTTPHost is the plaintext listen host. Defaults to "0.0.0.0".
	HTTPHost string

	// HTTPSPort, when non-zero, enables a TLS listener alongside HTTP.
	HTTPSPort int
	HTTPSHost string
	// HTTPSCert and HTTPSKey are PEM file paths. When HTTPSPort is set and
	// these are empty, a self-signed certificate is generated at startup.
	HTTPSCert string
	HTTPSKey  string

	// SubdomainMappingEnable and BaseDomains configure the
	// owner.repo.<base> rewrite (spec.md §4.1).
	SubdomainMappingEnable bool
	BaseDomains            []string

	// LogLevel is one of "debug", "info", "warn", "error". Defaults to "info".
	LogLevel string
	// Logger overrides the default stderr slog.Logger entirely.
	Logger *slog.Logger

	// OnRawRequest, when set, is invoked synchronously for every raw
	// content request whose file was found, after the response headers are
	// set and before the body is written. It is not invoked for 404s.
	OnRawRequest func(RawRequestEvent)
}

// Server is a running embedded localgit instance.
type Server struct {
	cancel    context.CancelFunc
	httpPort  int
	httpsPort int
}

// HTTPPort returns the bound plaintext listener port, or -1 if unavailable.
func (s *Server) HTTPPort() int { return s.httpPort }

// HTTPSPort returns the bound TLS listener port, or -1 if HTTPS is disabled.
func (s *Server) HTTPSPort() int { return s.httpsPort }

// Shutdown stops the server's listeners. ctx is accepted for API symmetry
// with http.Server.Shutdown but is not currently used to bound the stop —
// the underlying listeners close as soon as their context is canceled.
func (s *Server) Shutdown(_ context.Context) error {
	s.cancel()
	return nil
}

// Start builds the effective configuration from opts (and opts.ConfigPath,
// if set), binds the listeners, and returns immediately with a handle for
// the running server. The caller owns the returned context's lifetime via
// Shutdown.
func Start(ctx context.Context, opts Options) (*Server, error) {
	eff, err := effectiveConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("sdk: building configuration: %w", err)
	}

	log := opts.Logger
	if log == nil {
		lvl := slog.LevelInfo
		switch eff.Logs.Level {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		}
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}

	runCtx, cancel := context.WithCancel(ctx)
	result, err := httpserver.Start(runCtx, eff, log)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("sdk: starting server: %w", err)
	}

	return &Server{cancel: cancel, httpPort: result.HTTPPort, httpsPort: result.HTTPSPort}, nil
}

// Serve builds and runs a server, blocking until ctx is canceled.
func Serve(ctx context.Context, opts Options) error {
	srv, err := Start(ctx, opts)
	if err != nil {
		return err
	}
	<-ctx.Done()
	return srv.Shutdown(context.Background())
}

func effectiveConfig(opts Options) (*config.EffectiveConfig, error) {
	yamlOverride, err := config.LoadYAML(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	override := &config.Config{
		VirtualRepos: opts.VirtualRepos,
		Listen:       &config.ListenConfig{},
	}
	if opts.RepoRoot != "" {
		override.RepoRoot = &opts.RepoRoot
	}
	override.Listen.HTTP = &config.HTTPListenConfig{Port: &opts.HTTPPort}
	if opts.HTTPHost != "" {
		if override.Listen.HTTP == nil {
			override.Listen.HTTP = &config.HTTPListenConfig{}
		}
		override.Listen.HTTP.Host = &opts.HTTPHost
	}
	if opts.HTTPSPort != 0 {
		override.Listen.HTTPS = &config.HTTPSListenConfig{Port: &opts.HTTPSPort}
		if opts.HTTPSHost != "" {
			override.Listen.HTTPS.Host = &opts.HTTPSHost
		}
		if opts.HTTPSCert != "" {
			override.Listen.HTTPS.Cert = &opts.HTTPSCert
		}
		if opts.HTTPSKey != "" {
			override.Listen.HTTPS.Key = &opts.HTTPSKey
		}
	}
	if opts.SubdomainMappingEnable || len(opts.BaseDomains) > 0 {
		override.SubdomainMapping = &config.SubdomainMappingConfig{
			Enable:      &opts.SubdomainMappingEnable,
			BaseDomains: opts.BaseDomains,
		}
	}
	if opts.LogLevel != "" {
		override.Logs = &config.LogsConfig{Level: &opts.LogLevel}
	}

	var observer config.RawRequestObserver
	if opts.OnRawRequest != nil {
		observer = func(e config.RawRequestEvent) { opts.OnRawRequest(e) }
	}

	return config.NewBuilder().
		Add(yamlOverride).
		Add(override).
		WithObserver(observer).
		Build()
}
