package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/localgit/localgit/internal/config"
	"github.com/localgit/localgit/internal/httpserver"
)

// serveRunE is rootCmd's default action: build the effective configuration
// from defaults, YAML, and flag overrides, then serve until interrupted.
func serveRunE(cmd *cobra.Command, _ []string) error {
	eff, err := loadEffectiveConfig(nil)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := newLogger(eff.Logs.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := httpserver.Start(ctx, eff, log)
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	log.Info("listening", "http_port", result.HTTPPort, "https_port", result.HTTPSPort, "repo_root", eff.RepoRoot)

	<-ctx.Done()
	log.Info("shutting down")
	return nil
}

// loadEffectiveConfig layers flag overrides on top of any --config YAML file
// and the built-in defaults. observer is wired only by pkg/sdk callers; the
// CLI entrypoint has no way to supply a Go callback via flags or YAML.
func loadEffectiveConfig(observer config.RawRequestObserver) (*config.EffectiveConfig, error) {
	yamlOverride, err := config.LoadYAML(flagConfig)
	if err != nil {
		return nil, err
	}

	flagsOverride := flagOverrides()

	return config.NewBuilder().
		Add(yamlOverride).
		Add(flagsOverride).
		WithObserver(observer).
		Build()
}

// flagOverrides converts the persistent CLI flags into a Config override,
// leaving fields nil (meaning "not set") wherever a flag was left at its
// unset sentinel value so YAML/defaults are not clobbered.
func flagOverrides() *config.Config {
	cfg := &config.Config{
		RepoRoot: strPtrIfSet(flagRepoRoot),
		Listen:   &config.ListenConfig{},
	}

	if flagHTTPPort != 0 {
		cfg.Listen.HTTP = &config.HTTPListenConfig{Port: &flagHTTPPort}
	}
	if flagHTTPHost != "" {
		if cfg.Listen.HTTP == nil {
			cfg.Listen.HTTP = &config.HTTPListenConfig{}
		}
		cfg.Listen.HTTP.Host = &flagHTTPHost
	}

	if flagHTTPSPort != 0 {
		cfg.Listen.HTTPS = &config.HTTPSListenConfig{Port: &flagHTTPSPort}
		if flagHTTPSHost != "" {
			cfg.Listen.HTTPS.Host = &flagHTTPSHost
		}
		if flagHTTPSCert != "" {
			cfg.Listen.HTTPS.Cert = &flagHTTPSCert
		}
		if flagHTTPSKey != "" {
			cfg.Listen.HTTPS.Key = &flagHTTPSKey
		}
	}

	if flagSubdomainMapping || len(flagBaseDomains) > 0 {
		cfg.SubdomainMapping = &config.SubdomainMappingConfig{BaseDomains: flagBaseDomains}
		if flagSubdomainMapping {
			cfg.SubdomainMapping.Enable = &flagSubdomainMapping
		}
	}

	if flagVerbosity != "" {
		cfg.Logs = &config.LogsConfig{Level: &flagVerbosity}
	}

	return cfg
}

func strPtrIfSet(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
