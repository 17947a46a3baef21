package config

// EffectiveConfig is the fully-resolved, non-pointer configuration the rest
// of the server consumes (spec.md §6.4). Builder.Build produces one from a
// defaults layer plus any number of overrides.
type EffectiveConfig struct {
	AppTitle         string
	RepoRoot         string
	VirtualRepos     map[string]map[string]string
	HTTP             EffectiveHTTPListen
	HTTPS            *EffectiveHTTPSListen // nil means disabled
	SubdomainMapping EffectiveSubdomainMapping
	Logs             EffectiveLogs
	OnRawRequest     RawRequestObserver // nil means no observer configured
}

// EffectiveHTTPListen is the required plaintext listener's resolved
// settings.
type EffectiveHTTPListen struct {
	Port int
	Host string
}

// EffectiveHTTPSListen is the optional TLS listener's resolved settings.
// Cert/Key are empty when a self-signed pair should be generated at
// startup (spec.md §6.3).
type EffectiveHTTPSListen struct {
	Port int
	Host string
	Cert string
	Key  string
}

// EffectiveSubdomainMapping is the resolved owner.repo.<base> rewrite
// setting (spec.md §4.1).
type EffectiveSubdomainMapping struct {
	Enable      bool
	BaseDomains []string
}

// EffectiveLogs is the resolved logging configuration.
type EffectiveLogs struct {
	Level        string
	LogsDir      string
	ReqLogFormat string
}
