package config

// Config is the root configuration (spec.md §6.4). All optional fields are
// pointers to support merge semantics during configuration building, the
// same convention the teacher's own config.Config uses.
type Config struct {
	AppTitle         *string                      `yaml:"appTitle"`
	RepoRoot         *string                      `yaml:"repoRoot"`
	VirtualRepos     map[string]map[string]string `yaml:"virtualRepos"`
	Listen           *ListenConfig                `yaml:"listen"`
	SubdomainMapping *SubdomainMappingConfig      `yaml:"subdomainMapping"`
	Logs             *LogsConfig                  `yaml:"logs"`
}

// ListenConfig groups the HTTP and HTTPS listener settings.
type ListenConfig struct {
	HTTP  *HTTPListenConfig  `yaml:"http"`
	HTTPS *HTTPSListenConfig `yaml:"https"`
}

// HTTPListenConfig is the required plaintext listener.
type HTTPListenConfig struct {
	Port *int    `yaml:"port"`
	Host *string `yaml:"host"`
}

// HTTPSListenConfig is the optional TLS listener. When enabled without a
// Cert/Key pair, a self-signed pair is generated at startup (spec.md §6.3).
type HTTPSListenConfig struct {
	Port *int    `yaml:"port"`
	Host *string `yaml:"host"`
	Cert *string `yaml:"cert"`
	Key  *string `yaml:"key"`
}

// SubdomainMappingConfig controls the owner.repo.<base> rewrite (spec.md
// §4.1).
type SubdomainMappingConfig struct {
	Enable      *bool    `yaml:"enable"`
	BaseDomains []string `yaml:"baseDomains"`
}

// LogsConfig controls structured-logging output (spec.md §6.4).
type LogsConfig struct {
	Level         *string `yaml:"level"`
	LogsDir       *string `yaml:"logsDir"`
	ReqLogFormat  *string `yaml:"reqLogFormat"`
}
