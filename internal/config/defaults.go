package config

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

// CreateDefaultConfiguration returns the baseline Config every override
// layers on top of, mirroring the teacher's CreateDefaultConfiguration.
func CreateDefaultConfiguration() *Config {
	return &Config{
		AppTitle: strPtr("localgit"),
		RepoRoot: strPtr("./repos"),
		Listen: &ListenConfig{
			HTTP: &HTTPListenConfig{
				Port: intPtr(8080),
				Host: strPtr("0.0.0.0"),
			},
		},
		SubdomainMapping: &SubdomainMappingConfig{
			Enable:      boolPtr(false),
			BaseDomains: nil,
		},
		Logs: &LogsConfig{
			Level:        strPtr("info"),
			LogsDir:      strPtr(""),
			ReqLogFormat: strPtr("text"),
		},
	}
}
