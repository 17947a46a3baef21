package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd_HasExpectedFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	require.NotNil(t, flags.Lookup("repo-root"))
	require.NotNil(t, flags.Lookup("config"))
	require.NotNil(t, flags.Lookup("http-port"))
	require.NotNil(t, flags.Lookup("http-host"))
	require.NotNil(t, flags.Lookup("https-port"))
	require.NotNil(t, flags.Lookup("https-host"))
	require.NotNil(t, flags.Lookup("https-cert"))
	require.NotNil(t, flags.Lookup("https-key"))
	require.NotNil(t, flags.Lookup("subdomain-mapping"))
	require.NotNil(t, flags.Lookup("base-domain"))
	require.NotNil(t, flags.Lookup("verbosity"))
}

func TestRootCmd_HasVersionSubcommand(t *testing.T) {
	found := false
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "version" {
			found = true
			break
		}
	}
	require.True(t, found, "version subcommand should be registered")
}

func TestRootCmd_DefaultActionIsServe(t *testing.T) {
	require.NotNil(t, rootCmd.RunE)
}
