package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riverfjs/tgmarkup/internal/profile"
	"github.com/riverfjs/tgmarkup/internal/session"
	"github.com/riverfjs/tgmarkup/internal/wizard"
)

func newWizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Run the post author dialog on the terminal",
		Long: `Run the post author dialog on the terminal.

Each input line is one message:
  /start          begin profile setup
  /menu           show the main menu
  !<action>       press a button, e.g. !add_post_type or !post:promo
  anything else   plain text answer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			profilePath, _ := cmd.Flags().GetString("profile")
			redisURL, _ := cmd.Flags().GetString("redis-url")
			chatID, _ := cmd.Flags().GetInt64("chat")

			var sessions session.Store = session.NewMemoryStore()
			if redisURL != "" {
				store, client, err := session.Open(ctx, redisURL)
				if err != nil {
					return err
				}
				defer client.Close()
				sessions = store
				slog.InfoContext(ctx, "redis connected", "prefix", session.DefaultPrefix)
			}

			w := wizard.New(profile.NewFileStore(profilePath), sessions, wizard.GeneratorFunc(draftPost))
			return runREPL(ctx, w, chatID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("profile", envOr("TGMARKUP_PROFILE", "profile.json"), "Profile JSON file (env TGMARKUP_PROFILE).")
	cmd.Flags().String("redis-url", envOr("REDIS_URL", ""), "Keep sessions in Redis (env REDIS_URL); memory when empty.")
	cmd.Flags().Int64("chat", 1, "Chat id of the terminal session.")
	return cmd
}

// runREPL feeds input lines to w until EOF and prints the replies.
func runREPL(ctx context.Context, w *wizard.Wizard, chatID int64, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var (
			replies []wizard.Reply
			err     error
		)
		switch {
		case line == "/start":
			replies, err = w.Start(ctx, chatID)
		case line == "/menu":
			replies, err = w.Menu(ctx, chatID)
		case strings.HasPrefix(line, "!"):
			replies, err = w.HandleAction(ctx, chatID, line[1:])
		default:
			replies, err = w.HandleMessage(ctx, wizard.Message{ChatID: chatID, Text: line})
		}
		if err != nil {
			return err
		}
		printReplies(out, replies)
	}
	return scanner.Err()
}

func printReplies(out io.Writer, replies []wizard.Reply) {
	for _, r := range replies {
		if r.ParseMode != "" {
			fmt.Fprintf(out, "[%s]\n", r.ParseMode)
		}
		fmt.Fprintln(out, r.Text)
		for _, row := range r.Buttons {
			for _, b := range row {
				fmt.Fprintf(out, "  (%s) !%s\n", b.Text, b.Action)
			}
		}
		fmt.Fprintln(out)
	}
}

// draftPost is the offline generator: a Markdown draft built from the topic
// and the profile, without calling a language model.
func draftPost(_ context.Context, req wizard.Request) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", strings.ToUpper(req.Topic))
	if req.Profile.Personality != "" {
		fmt.Fprintf(&b, "_%s_\n\n", req.Profile.Personality)
	}
	for _, s := range req.Profile.Services {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	if req.Profile.Tag != "" {
		fmt.Fprintf(&b, "\n%s", req.Profile.Tag)
	}
	return b.String(), nil
}
