package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/charliek/tracehelper/internal/config"
	"github.com/charliek/tracehelper/internal/constants"
)

// Version is set during build
var Version = "dev"

// Global flags
var (
	configPath  string
	serviceAddr string
	verbose     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tracehelper",
	Short: "Generate trace queries from service logs",
	Long: `tracehelper turns log lines containing trace IDs into a query for the
trace analysis service. It supports:
  - Selecting a log file or pasting log text
  - Optional span and verbose analysis
  - Copying the generated query to the clipboard
  - Downloading the query as trace_query.dql

Run without a subcommand to open the interactive TUI.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runTUI,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", constants.DefaultConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVar(&serviceAddr, "addr", "", "Analysis service address (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Set version template
	rootCmd.SetVersionTemplate("tracehelper version {{.Version}}\n")
}

// loadConfig resolves the configuration for cmd.
// Priority for the service address:
// 1. --addr flag
// 2. TRACEHELPER_ADDR (process env, then env_file)
// 3. Config file
// 4. Default address
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if cmd.Flags().Changed("config") {
		// A config file named explicitly must exist
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	} else if found, err := config.FindConfigFile(); err == nil {
		path = found
	}

	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("addr") {
		if err := config.ValidateAddress(serviceAddr); err != nil {
			return nil, fmt.Errorf("invalid --addr: %w", err)
		}
		cfg.Service.Address = serviceAddr
	}

	return cfg, nil
}

// newLogger creates a text logger writing to w. Verbose enables debug output;
// otherwise only warnings and errors are written.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
