package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"vaamtranscribe/internal/app"
	"vaamtranscribe/internal/config"
	"vaamtranscribe/internal/core/domain"
	"vaamtranscribe/internal/output"
	"vaamtranscribe/internal/version"
)

type Dependencies struct {
	Config *config.Config
	Stdout io.Writer
	Stderr io.Writer

	// NewApp builds the pipeline once flags are applied. Defaults to app.New.
	NewApp func(cfg *config.Config, logger *slog.Logger) *app.App
}

type options struct {
	verbose bool
	model   string
	backend string
	output  string
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "vaam-transcribe [--verbose] <share-url>",
		Short: "Transcribe a Vaam share video with Gemini",
		Long: "Resolves a Vaam share link, downloads the video and asks a Gemini model for a plain-text transcript.\n" +
			"The transcript is printed on stdout. Errors are printed as a JSON object.\n\n" +
			"Requires the " + config.APIKeyEnv + " environment variable.",
		Example: "  vaam-transcribe https://app.vaam.io/share/abc123\n" +
			"  vaam-transcribe -v https://app.vaam.io/share/abc123 -o transcript.txt",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), deps, opts, args)
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)

	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")
	rootCmd.Flags().StringVar(&opts.model, "model", "", "Model name (default from config)")
	rootCmd.Flags().StringVar(&opts.backend, "backend", "", "Transcription backend: gemini or openai")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the transcript to a file instead of stdout")

	return rootCmd
}

// Execute runs the command line and returns the process exit code.
// Failures are written to stdout as a JSON error object.
func Execute(ctx context.Context, deps *Dependencies, args []string) (code int) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.NewApp == nil {
		deps.NewApp = app.New
	}

	formatter := output.NewFormatter(deps.Stdout)
	defer func() {
		if r := recover(); r != nil {
			e := domain.NewError(domain.CodeTranscriptionFailed, fmt.Sprint(r), nil)
			_ = formatter.Error(e)
			code = e.Code.ExitCode()
		}
	}()

	cmd := NewRootCmd(deps)
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()
	cmd.SetArgs(knownArgs(cmd.Flags(), args))

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		_ = formatter.Error(domain.AsError(err))
	}
	return domain.ExitCode(err)
}

// knownArgs drops dash-prefixed tokens that fs does not define, so an
// unknown flag never consumes the share URL as its value. Everything
// after "--" is kept as-is.
func knownArgs(fs *pflag.FlagSet, args []string) []string {
	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(kept, args[i:]...)
		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			kept = append(kept, arg)
			if !hasValue && f.NoOptDefVal == "" && i+1 < len(args) {
				i++
				kept = append(kept, args[i])
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			f := fs.ShorthandLookup(arg[1:2])
			if f == nil {
				continue
			}
			if f.NoOptDefVal != "" {
				if !strings.HasPrefix(arg[2:], "=") && !allShorthands(fs, arg[2:]) {
					continue
				}
				kept = append(kept, arg)
				continue
			}
			kept = append(kept, arg)
			if len(arg) == 2 && i+1 < len(args) {
				i++
				kept = append(kept, args[i])
			}
		default:
			kept = append(kept, arg)
		}
	}
	return kept
}

// allShorthands reports whether every letter of a combined short flag
// such as -vh names a boolean flag.
func allShorthands(fs *pflag.FlagSet, letters string) bool {
	for _, c := range letters {
		if c > 127 {
			return false
		}
		f := fs.ShorthandLookup(string(c))
		if f == nil || f.NoOptDefVal == "" {
			return false
		}
	}
	return true
}

func run(ctx context.Context, deps *Dependencies, opts options, args []string) error {
	if len(args) == 0 {
		return domain.NewError(domain.CodeMissingArgument, "", nil)
	}
	shareURL := args[0]

	cfg := *deps.Config
	if opts.model != "" {
		cfg.Model = opts.model
	}
	if opts.backend != "" {
		cfg.Backend = opts.backend
	}

	if cfg.APIKey == "" {
		return domain.NewError(domain.CodeMissingAPIKey, "", nil)
	}
	if _, err := domain.ParseShareURL(shareURL); err != nil {
		return err
	}

	inv := domain.NewInvocation(shareURL, opts.verbose)
	logger := newLogger(deps.Stderr, inv)
	logger.Info("starting", slog.String("run", inv.ID), slog.String("url", shareURL))

	transcript, err := deps.NewApp(&cfg, logger).Orchestrator.Run(ctx, inv)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(transcript), 0644); err != nil {
			return domain.NewError(domain.CodeTranscriptionFailed, "", err)
		}
		logger.Info("transcript saved", slog.String("path", opts.output))
		return nil
	}
	return output.NewFormatter(deps.Stdout).Transcript(transcript)
}

// newLogger logs progress only for verbose invocations.
func newLogger(w io.Writer, inv *domain.Invocation) *slog.Logger {
	level := slog.LevelWarn
	if inv.Verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
