package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/localgit/localgit/internal/config"
)

func TestBuildAppliesDefaults(t *testing.T) {
	eff, err := config.NewBuilder().Build()
	require.NoError(t, err)
	require.Equal(t, "localgit", eff.AppTitle)
	require.Equal(t, "./repos", eff.RepoRoot)
	require.Equal(t, 8080, eff.HTTP.Port)
	require.Nil(t, eff.HTTPS)
	require.False(t, eff.SubdomainMapping.Enable)
}

func TestBuildLayersYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
appTitle: myserver
listen:
  http:
    port: 9090
subdomainMapping:
  enable: true
  baseDomains: ["localtest.me"]
`), 0o644))

	override, err := config.LoadYAML(path)
	require.NoError(t, err)

	eff, err := config.NewBuilder().Add(override).Build()
	require.NoError(t, err)
	require.Equal(t, "myserver", eff.AppTitle)
	require.Equal(t, 9090, eff.HTTP.Port)
	require.True(t, eff.SubdomainMapping.Enable)
	require.Equal(t, []string{"localtest.me"}, eff.SubdomainMapping.BaseDomains)
}

func TestBuildRejectsEnabledSubdomainMappingWithoutBaseDomains(t *testing.T) {
	override := &config.Config{
		SubdomainMapping: &config.SubdomainMappingConfig{Enable: boolPtrFor(true)},
	}
	_, err := config.NewBuilder().Add(override).Build()
	require.Error(t, err)
}

func TestLoadYAMLMissingFileIsNotError(t *testing.T) {
	override, err := config.LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NotNil(t, override)
}

func boolPtrFor(b bool) *bool { return &b }
