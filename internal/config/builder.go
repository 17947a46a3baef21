package config

import "fmt"

// Builder constructs an EffectiveConfig by layering overrides on top of
// defaults, mirroring the teacher's config.Builder: later Add calls take
// precedence over earlier ones.
type Builder struct {
	overrides []*Config
	observer  RawRequestObserver
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override (typically parsed YAML, then CLI
// flags layered on top).
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// WithObserver sets the onRawRequest hook. It isn't representable in YAML,
// so it is wired separately from the Config overrides (by cmd/ or pkg/sdk).
func (b *Builder) WithObserver(observer RawRequestObserver) *Builder {
	b.observer = observer
	return b
}

// Build starts from CreateDefaultConfiguration, applies every override in
// order, validates, and returns the fully-resolved EffectiveConfig.
func (b *Builder) Build() (*EffectiveConfig, error) {
	cfg := CreateDefaultConfiguration()
	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return resolve(cfg, b.observer), nil
}

func mergeConfig(dst, src *Config) {
	if src.AppTitle != nil {
		dst.AppTitle = src.AppTitle
	}
	if src.RepoRoot != nil {
		dst.RepoRoot = src.RepoRoot
	}
	if src.VirtualRepos != nil {
		if dst.VirtualRepos == nil {
			dst.VirtualRepos = map[string]map[string]string{}
		}
		for owner, repos := range src.VirtualRepos {
			if dst.VirtualRepos[owner] == nil {
				dst.VirtualRepos[owner] = map[string]string{}
			}
			for repo, path := range repos {
				dst.VirtualRepos[owner][repo] = path
			}
		}
	}

	if src.Listen != nil {
		if dst.Listen == nil {
			dst.Listen = &ListenConfig{}
		}
		mergeHTTPListen(dst.Listen, src.Listen)
		mergeHTTPSListen(dst.Listen, src.Listen)
	}

	if src.SubdomainMapping != nil {
		if dst.SubdomainMapping == nil {
			dst.SubdomainMapping = &SubdomainMappingConfig{}
		}
		if src.SubdomainMapping.Enable != nil {
			dst.SubdomainMapping.Enable = src.SubdomainMapping.Enable
		}
		if src.SubdomainMapping.BaseDomains != nil {
			dst.SubdomainMapping.BaseDomains = src.SubdomainMapping.BaseDomains
		}
	}

	if src.Logs != nil {
		if dst.Logs == nil {
			dst.Logs = &LogsConfig{}
		}
		if src.Logs.Level != nil {
			dst.Logs.Level = src.Logs.Level
		}
		if src.Logs.LogsDir != nil {
			dst.Logs.LogsDir = src.Logs.LogsDir
		}
		if src.Logs.ReqLogFormat != nil {
			dst.Logs.ReqLogFormat = src.Logs.ReqLogFormat
		}
	}
}

func mergeHTTPListen(dst, src *ListenConfig) {
	if src.HTTP == nil {
		return
	}
	if dst.HTTP == nil {
		dst.HTTP = &HTTPListenConfig{}
	}
	if src.HTTP.Port != nil {
		dst.HTTP.Port = src.HTTP.Port
	}
	if src.HTTP.Host != nil {
		dst.HTTP.Host = src.HTTP.Host
	}
}

func mergeHTTPSListen(dst, src *ListenConfig) {
	if src.HTTPS == nil {
		return
	}
	if dst.HTTPS == nil {
		dst.HTTPS = &HTTPSListenConfig{}
	}
	if src.HTTPS.Port != nil {
		dst.HTTPS.Port = src.HTTPS.Port
	}
	if src.HTTPS.Host != nil {
		dst.HTTPS.Host = src.HTTPS.Host
	}
	if src.HTTPS.Cert != nil {
		dst.HTTPS.Cert = src.HTTPS.Cert
	}
	if src.HTTPS.Key != nil {
		dst.HTTPS.Key = src.HTTPS.Key
	}
}

func validate(cfg *Config) error {
	if cfg.RepoRoot == nil || *cfg.RepoRoot == "" {
		return fmt.Errorf("config: repoRoot must not be empty")
	}
	if cfg.Listen == nil || cfg.Listen.HTTP == nil || cfg.Listen.HTTP.Port == nil {
		return fmt.Errorf("config: listen.http.port must be set")
	}
	if cfg.SubdomainMapping != nil && cfg.SubdomainMapping.Enable != nil && *cfg.SubdomainMapping.Enable {
		if len(cfg.SubdomainMapping.BaseDomains) == 0 {
			return fmt.Errorf("config: subdomainMapping.enable requires at least one baseDomains entry")
		}
	}
	return nil
}

func resolve(cfg *Config, observer RawRequestObserver) *EffectiveConfig {
	out := &EffectiveConfig{
		AppTitle:     deref(cfg.AppTitle),
		RepoRoot:     deref(cfg.RepoRoot),
		VirtualRepos: cfg.VirtualRepos,
		HTTP: EffectiveHTTPListen{
			Port: derefInt(cfg.Listen.HTTP.Port),
			Host: deref(cfg.Listen.HTTP.Host),
		},
		SubdomainMapping: EffectiveSubdomainMapping{
			Enable:      cfg.SubdomainMapping != nil && derefBool(cfg.SubdomainMapping.Enable),
			BaseDomains: baseDomains(cfg),
		},
		Logs: EffectiveLogs{
			Level:        deref(cfg.Logs.Level),
			LogsDir:      deref(cfg.Logs.LogsDir),
			ReqLogFormat: deref(cfg.Logs.ReqLogFormat),
		},
		OnRawRequest: observer,
	}

	if cfg.Listen.HTTPS != nil && cfg.Listen.HTTPS.Port != nil {
		out.HTTPS = &EffectiveHTTPSListen{
			Port: *cfg.Listen.HTTPS.Port,
			Host: deref(cfg.Listen.HTTPS.Host),
			Cert: deref(cfg.Listen.HTTPS.Cert),
			Key:  deref(cfg.Listen.HTTPS.Key),
		}
	}

	return out
}

func baseDomains(cfg *Config) []string {
	if cfg.SubdomainMapping == nil {
		return nil
	}
	return cfg.SubdomainMapping.BaseDomains
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func derefBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
