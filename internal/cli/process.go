package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/charliek/tracehelper/internal/api"
	"github.com/charliek/tracehelper/internal/clipboard"
	"github.com/charliek/tracehelper/internal/domain"
)

// processFlags are the flags of the process command
type processFlags struct {
	text        string
	spans       bool
	verboseInfo bool
	copy        bool
	download    bool
	outDir      string
	jsonOutput  bool
}

var procFlags processFlags

// processCmd submits a log sample without the TUI
var processCmd = &cobra.Command{
	Use:   "process [FILE]",
	Short: "Generate a trace query from a log file or text",
	Long: `Submit a log file, or text given with --text, to the analysis service
and print the generated query. Use - as FILE to read the log from stdin.

The summary is written to stderr and the query to stdout, so the output
can be piped or redirected.`,
	Example: `  tracehelper process service.log
  tracehelper example | tracehelper process - --spans
  tracehelper process --text "T-a9f624ee2e4f3c9b" --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), verbose)

		source, err := readSource(args, procFlags.text, cmd.Flags().Changed("text"), cmd.InOrStdin())
		if err != nil {
			return err
		}

		opts := cfg.SubmissionOptions()
		if cmd.Flags().Changed("spans") {
			opts.IncludeSpans = procFlags.spans
		}
		if cmd.Flags().Changed("verbose-info") {
			opts.Verbose = procFlags.verboseInfo
		}

		dir := cfg.Download.Dir
		if cmd.Flags().Changed("out") {
			dir = procFlags.outDir
		}

		a := newApp(cfg, dir, logger, clipboard.NewOSC52())
		return runProcess(cmdContext(cmd), a, source, opts, procFlags, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	processCmd.Flags().StringVar(&procFlags.text, "text", "", "Log text to analyze instead of a file")
	processCmd.Flags().BoolVar(&procFlags.spans, "spans", false, "Include spans in the query")
	processCmd.Flags().BoolVar(&procFlags.verboseInfo, "verbose-info", false, "Ask the service for verbose analysis info")
	processCmd.Flags().BoolVar(&procFlags.copy, "copy", false, "Copy the query to the clipboard")
	processCmd.Flags().BoolVar(&procFlags.download, "download", false, "Download the query as a .dql file")
	processCmd.Flags().StringVar(&procFlags.outDir, "out", "", "Directory for --download (default from config)")
	processCmd.Flags().BoolVar(&procFlags.jsonOutput, "json", false, "Output as JSON")

	rootCmd.AddCommand(processCmd)
}

// processOutput is the --json form of a process run
type processOutput struct {
	api.ProcessResponse
	Copy     string `json:"copy,omitempty"`
	Download string `json:"download,omitempty"`
}

// readSource builds the log source from the command arguments.
// A FILE of "-" reads the text from stdin.
func readSource(args []string, text string, textSet bool, stdin io.Reader) (domain.LogSource, error) {
	if len(args) == 0 {
		if !textSet || text == "" {
			return domain.LogSource{}, errors.New("no log input: pass FILE, - for stdin, or --text")
		}
		return domain.LogSource{Text: text}, nil
	}
	if textSet {
		return domain.LogSource{}, errors.New("FILE and --text are mutually exclusive")
	}

	if args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return domain.LogSource{}, fmt.Errorf("reading stdin: %w", err)
		}
		return domain.LogSource{Text: string(data)}, nil
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return domain.LogSource{}, fmt.Errorf("log file: %w", err)
	}
	if info.IsDir() {
		return domain.LogSource{}, fmt.Errorf("log file: %s is a directory", args[0])
	}
	return domain.LogSource{File: &domain.LogFile{Path: args[0]}}, nil
}

// runProcess submits source and reports the result. Exports run only after
// a successful submission.
func runProcess(ctx context.Context, a *app, source domain.LogSource, opts domain.SubmissionOptions, flags processFlags, stdout, stderr io.Writer) error {
	state, err := a.ctrl.Submit(ctx, source, opts)
	if err != nil {
		return err
	}

	if state.Phase != domain.PhaseSucceeded || state.Result == nil {
		if flags.jsonOutput {
			writeJSON(stdout, stderr, processOutput{ProcessResponse: api.ProcessResponse{Error: state.Message}})
		}
		return errors.New(state.Message)
	}

	result := *state.Result
	out := processOutput{ProcessResponse: api.ProcessResponse{
		Success:     true,
		Count:       result.Count,
		CountType:   result.CountType,
		DQLQuery:    result.Query,
		VerboseInfo: result.VerboseInfo,
	}}

	var exportErr error
	copied := false
	if flags.copy {
		n := a.exporter.Copy()
		out.Copy = n.Message
		if n.IsError {
			exportErr = errors.New(n.Message)
		} else {
			copied = true
		}
	}
	if flags.download {
		n := a.exporter.Download(ctx)
		if n.IsError {
			out.Download = n.Message
			exportErr = errors.Join(exportErr, errors.New(n.Message))
		} else {
			out.Download = a.exporter.DownloadPath()
		}
	}

	if flags.jsonOutput {
		writeJSON(stdout, stderr, out)
		return exportErr
	}

	fmt.Fprintln(stderr, result.Summary())
	if result.VerboseInfo != "" {
		fmt.Fprintln(stderr, result.VerboseInfo)
	}
	fmt.Fprintln(stdout, result.Query)
	if copied {
		fmt.Fprintln(stderr, out.Copy)
	}
	if flags.download && out.Download == a.exporter.DownloadPath() {
		fmt.Fprintf(stderr, "%s %s\n", domain.MsgDownloaded, out.Download)
	}

	return exportErr
}

func writeJSON(stdout, stderr io.Writer, v any) {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "Warning: failed to encode output: %v\n", err)
	}
}
