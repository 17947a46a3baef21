package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func resetFlags() {
	flagRepoRoot = ""
	flagConfig = ""
	flagHTTPPort = 0
	flagHTTPHost = ""
	flagHTTPSPort = 0
	flagHTTPSHost = ""
	flagHTTPSCert = ""
	flagHTTPSKey = ""
	flagSubdomainMapping = false
	flagBaseDomains = nil
	flagVerbosity = ""
}

func TestFlagOverridesOmitsUnsetFields(t *testing.T) {
	resetFlags()
	defer resetFlags()

	override := flagOverrides()
	require.Nil(t, override.RepoRoot)
	require.Nil(t, override.Listen.HTTP)
	require.Nil(t, override.Listen.HTTPS)
	require.Nil(t, override.SubdomainMapping)
	require.Nil(t, override.Logs)
}

func TestFlagOverridesAppliesSetFields(t *testing.T) {
	resetFlags()
	defer resetFlags()

	flagRepoRoot = "/srv/repos"
	flagHTTPPort = 9090
	flagSubdomainMapping = true
	flagBaseDomains = []string{"git.example.com"}
	flagVerbosity = "debug"

	override := flagOverrides()
	require.Equal(t, "/srv/repos", *override.RepoRoot)
	require.Equal(t, 9090, *override.Listen.HTTP.Port)
	require.True(t, *override.SubdomainMapping.Enable)
	require.Equal(t, []string{"git.example.com"}, override.SubdomainMapping.BaseDomains)
	require.Equal(t, "debug", *override.Logs.Level)
}

func TestLoadEffectiveConfigAppliesFlagsOverDefaults(t *testing.T) {
	resetFlags()
	defer resetFlags()

	flagRepoRoot = "/data/repos"
	flagHTTPPort = 7000

	eff, err := loadEffectiveConfig(nil)
	require.NoError(t, err)
	require.Equal(t, "/data/repos", eff.RepoRoot)
	require.Equal(t, 7000, eff.HTTP.Port)
}

func TestNewLoggerAcceptsAllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", ""} {
		require.NotNil(t, newLogger(level))
	}
}
