package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags shared across commands, mirroring the teacher's
// package-level PersistentFlags()-backed variables.
var (
	flagRepoRoot         string
	flagConfig           string
	flagHTTPPort         int
	flagHTTPHost         string
	flagHTTPSPort        int
	flagHTTPSHost        string
	flagHTTPSCert        string
	flagHTTPSKey         string
	flagSubdomainMapping bool
	flagBaseDomains      []string
	flagVerbosity        string
)

// rootCmd is the top-level command for localgit. The default action is
// serve, the same way the teacher's rootCmd defaults to calculateRunE.
var rootCmd = &cobra.Command{
	Use:   "localgit",
	Short: "A GitHub-compatible HTTP front end for on-disk Git repositories",
	Long:  "localgit serves on-disk Git repositories over HTTP(S) with GitHub-shaped raw, API, archive, and Smart HTTP routes — a local stand-in for GitHub for offline development, testing, and CI.",
	RunE:  serveRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRepoRoot, "repo-root", "", "root directory under which owner/repo paths are resolved (empty keeps the configured/default root)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file (default: none)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPPort, "http-port", 0, "HTTP listen port (0 keeps the configured/default port)")
	rootCmd.PersistentFlags().StringVar(&flagHTTPHost, "http-host", "", "HTTP listen host (empty keeps the configured/default host)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPSPort, "https-port", 0, "HTTPS listen port (0 disables HTTPS unless set in config)")
	rootCmd.PersistentFlags().StringVar(&flagHTTPSHost, "https-host", "", "HTTPS listen host")
	rootCmd.PersistentFlags().StringVar(&flagHTTPSCert, "https-cert", "", "HTTPS certificate file (self-signed generated if unset)")
	rootCmd.PersistentFlags().StringVar(&flagHTTPSKey, "https-key", "", "HTTPS key file (self-signed generated if unset)")
	rootCmd.PersistentFlags().BoolVar(&flagSubdomainMapping, "subdomain-mapping", false, "enable owner.repo.<base-domain> subdomain rewriting")
	rootCmd.PersistentFlags().StringArrayVar(&flagBaseDomains, "base-domain", nil, "base domain for subdomain mapping (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "", "log verbosity: debug, info, warn, error (empty keeps the configured/default level)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
