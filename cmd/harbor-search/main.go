package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/youhong316/harbor/client"
	"github.com/youhong316/harbor/mcp"
	"github.com/youhong316/harbor/server/fixtureserver"
)

// Entry points of the long-running subcommands; tests replace them.
var (
	runFixture = fixtureserver.Run
	runMCP     = mcp.RunWithClientConfig
)

var (
	apiFlag      string
	userFlag     string
	passwordFlag string
	timeoutFlag  time.Duration
	debugFlag    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "harbor-search",
		Short:         "Global search client for the Harbor registry API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "", "Registry base URL (default $HARBOR_SEARCH_BASE_URL or http://localhost:8080)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Username for basic auth (default $HARBOR_SEARCH_USERNAME)")
	rootCmd.PersistentFlags().StringVarP(&passwordFlag, "password", "p", "", "Password for basic auth (default $HARBOR_SEARCH_PASSWORD)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "HTTP timeout (default $HARBOR_SEARCH_TIMEOUT or 30s)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log HTTP requests and responses")

	rootCmd.AddCommand(newSearchCmd(), newFixtureServerCmd(), newMCPCmd())
	return rootCmd
}

// newSearchCmd: harbor-search search <term>
func newSearchCmd() *cobra.Command {
	var (
		output  string
		escape  bool
		retries int
		reqID   bool
	)
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search projects, repositories and charts by keyword",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(output)
			if err != nil {
				return err
			}
			var opts []client.Option
			if escape {
				opts = append(opts, client.WithEscapedTerms())
			}
			if retries > 1 {
				opts = append(opts, client.WithRetry(retries))
			}
			if reqID {
				opts = append(opts, client.WithRequestID())
			}
			c, err := buildClient(opts...)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			return runSearch(cmd.Context(), c, term, format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json|yaml")
	cmd.Flags().BoolVar(&escape, "escape", false, "Percent-encode the term (by default it is sent verbatim)")
	cmd.Flags().IntVar(&retries, "retry", 1, "Total attempts for transient failures")
	cmd.Flags().BoolVar(&reqID, "request-id", false, "Send a fresh X-Request-Id header")
	return cmd
}

func newFixtureServerCmd() *cobra.Command {
	var o fixtureserver.Overrides
	cmd := &cobra.Command{
		Use:   "fixture-server",
		Short: "Serve /api/search from a catalog file for local development",
		Long: "Serve /api/search from a catalog file for local development.\n\n" +
			"The persistent --user/--password flags set the credentials that unlock private projects\n" +
			"(default $HARBOR_FIXTURE_USERNAME/$HARBOR_FIXTURE_PASSWORD, then the devmode pair).",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userFlag != "" {
				o.Username, o.Password = userFlag, passwordFlag
			}
			return runFixture(o)
		},
	}
	cmd.Flags().IntVar(&o.Port, "port", 0, "Listen port (default $HARBOR_FIXTURE_HTTP_PORT or 8080)")
	cmd.Flags().StringVar(&o.CatalogPath, "catalog", "", "Catalog file (.json/.yaml); empty serves the sample catalog")
	cmd.Flags().StringVar(&o.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	return cmd
}

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Expose global search as an MCP tool (stdio or Streamable HTTP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadClientConfig()
			if err != nil {
				return err
			}
			return runMCP(cfg, flagOptions()...)
		},
	}
}

// loadClientConfig reads HARBOR_SEARCH_* settings and applies --api on top.
func loadClientConfig() (*client.Config, error) {
	cfg, err := client.LoadConfig()
	if err != nil {
		return nil, err
	}
	if apiFlag != "" {
		cfg.BaseURL = apiFlag
	}
	return cfg, nil
}

// buildClient merges HARBOR_SEARCH_* settings with the persistent flags.
func buildClient(extra ...client.Option) (*client.Client, error) {
	cfg, err := loadClientConfig()
	if err != nil {
		return nil, err
	}
	return client.NewFromConfig(cfg, append(flagOptions(), extra...)...)
}

func flagOptions() []client.Option {
	var opts []client.Option
	if userFlag != "" {
		opts = append(opts, client.WithBasicAuth(userFlag, passwordFlag))
	}
	if timeoutFlag > 0 {
		opts = append(opts, client.WithHTTPTimeout(timeoutFlag))
	}
	if debugFlag {
		opts = append(opts, client.WithDebugLogging(true))
	}
	return opts
}
