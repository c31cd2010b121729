package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riverfjs/tgmarkup"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tgmarkup",
		Short:        "Rebuild Telegram formatted text as HTML or MarkdownV2",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			logger, err := newLogger(cmd.ErrOrStderr(), level)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			tgmarkup.SetLogger(logger.With("component", "tgmarkup"))
			return nil
		},
	}
	cmd.PersistentFlags().String("log-level", "warn", "Log level: debug|info|warn|error.")

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newWizardCmd())
	return cmd
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// renderOptions reads the --markup and --nesting flags.
func renderOptions(cmd *cobra.Command) ([]tgmarkup.Option, error) {
	var opts []tgmarkup.Option

	markup, _ := cmd.Flags().GetString("markup")
	switch strings.ToLower(strings.TrimSpace(markup)) {
	case "", "html":
		opts = append(opts, tgmarkup.WithMarkup(tgmarkup.MarkupHTML))
	case "markdown", "markdownv2":
		opts = append(opts, tgmarkup.WithMarkup(tgmarkup.MarkupMarkdown))
	default:
		return nil, fmt.Errorf("invalid --markup %q (want html|markdown)", markup)
	}

	if cmd.Flags().Lookup("nesting") == nil {
		return opts, nil
	}
	nesting, _ := cmd.Flags().GetString("nesting")
	switch strings.ToLower(strings.TrimSpace(nesting)) {
	case "", "best-effort":
		opts = append(opts, tgmarkup.WithNesting(tgmarkup.NestingBestEffort))
	case "split":
		opts = append(opts, tgmarkup.WithNesting(tgmarkup.NestingSplit))
	default:
		return nil, fmt.Errorf("invalid --nesting %q (want best-effort|split)", nesting)
	}
	return opts, nil
}

// readInput reads the file named by args[0], or stdin when there is none or
// it is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
