package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riverfjs/tgmarkup"
)

// message is the input of the render command, the text part of a Bot API
// Message.
type message struct {
	Text     string                   `json:"text"`
	Entities []tgmarkup.MessageEntity `json:"entities"`
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a JSON message {text, entities} as markup",
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
			var msg message
			if err := json.Unmarshal(data, &msg); err != nil {
				return fmt.Errorf("decode message: %w", err)
			}

			var out string
			if strict, _ := cmd.Flags().GetBool("strict"); strict {
				if out, err = tgmarkup.ReconstructStrict(msg.Text, msg.Entities, opts...); err != nil {
					return err
				}
			} else {
				out = tgmarkup.Reconstruct(msg.Text, msg.Entities, opts...)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().String("markup", "html", "Output markup: html|markdown.")
	cmd.Flags().String("nesting", "best-effort", "Crossing entities: best-effort|split.")
	cmd.Flags().Bool("strict", false, "Fail on crossing entities or links without url.")
	return cmd
}
