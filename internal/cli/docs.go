package cli

import (
	"fmt"
	"io"
	"strings"

	"setgrid/internal/docs"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show help topics (gestures, simulate, program, config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, docsTopics{Topics: docs.Topics()})
			}
			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `setgrid docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, docsTopic{Topic: topic, Markdown: body})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	return cmd
}

type docsTopics struct {
	Topics []string `json:"topics"`
}

func (d docsTopics) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, strings.Join(d.Topics, "\n")+"\n")
	return err
}

type docsTopic struct {
	Topic    string `json:"topic"`
	Markdown string `json:"markdown"`
}

func (d docsTopic) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, d.Markdown)
	return err
}
