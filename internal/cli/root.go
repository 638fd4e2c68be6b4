package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/reverb/internal/config"
	"github.com/tessro/reverb/internal/errors"
	"github.com/tessro/reverb/internal/lavalink"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "reverb",
	Short: "Talk to a Lavalink-compatible audio node",
	Long:  `Reverb is a CLI for a Lavalink-compatible audio node: resolve and decode tracks, and inspect the node's route planner.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.reverbrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// newNode builds a node from the loaded configuration.
func newNode() (*lavalink.Node, error) {
	if cfg.Node.URL == "" {
		return nil, errors.ErrNodeNotConfigured
	}

	node := lavalink.NewNode(lavalink.ConnectionOptions{
		Name:   cfg.Node.Name,
		URL:    cfg.Node.URL,
		Auth:   cfg.Node.Password,
		Secure: cfg.Node.Secure,
	}, clientConfig())

	if Verbose() {
		node.Rest().SetVerbose(true, func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		})
	}

	return node, nil
}

// clientConfig converts the file config into the shared client config.
func clientConfig() *lavalink.ClientConfig {
	return &lavalink.ClientConfig{
		UserAgent:   userAgent(),
		RestTimeout: restTimeout(),
	}
}

func userAgent() string {
	if cfg.Client.UserAgent != "" {
		return cfg.Client.UserAgent
	}
	return "reverb/" + Version
}

func restTimeout() time.Duration {
	return time.Duration(cfg.Client.RestTimeout) * time.Millisecond
}
