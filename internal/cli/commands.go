package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charliek/tracehelper/internal/constants"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tracehelper version %s\n", Version)
	},
}

// exampleCmd prints the built-in example log
var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example log",
	Long: `Print a small log sample in the format the analysis service understands.
Pipe it into 'tracehelper process -' to try the service.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), constants.ExampleLog)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(exampleCmd)
}
