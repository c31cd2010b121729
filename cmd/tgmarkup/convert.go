package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riverfjs/tgmarkup"
)

// chunkSeparator is printed between messages of one post.
const chunkSeparator = "\n-----\n"

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert Markdown into Telegram-sized markup messages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := renderOptions(cmd)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			maxLen, _ := cmd.Flags().GetInt("max-length")

			texts, err := tgmarkup.ProcessMarkdown(cmd.Context(), string(data), maxLen, opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, t := range texts {
				if i > 0 {
					fmt.Fprint(out, chunkSeparator)
				}
				fmt.Fprintln(out, t.Markup)
			}
			return nil
		},
	}
	cmd.Flags().String("markup", "html", "Output markup: html|markdown.")
	cmd.Flags().Int("max-length", tgmarkup.DefaultMaxMessageLength, "Maximum message length in UTF-16 code units.")
	return cmd
}
