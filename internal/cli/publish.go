package cli

import (
	"fmt"
	"io"
	"strings"

	"setgrid/internal/publish"
	"setgrid/internal/store"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var to string
	var overwrite bool
	var notes bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export the program (or one day with --day) as markdown pages",
		Example: strings.TrimSpace(`
  setgrid publish --to ./site
  setgrid publish --to ./site --day upper-a --notes --overwrite
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.program()
			if err != nil {
				return writeErr(cmd, err)
			}
			opt := publish.WriteOptions{IncludeNotes: notes, Overwrite: overwrite}
			var res publish.WriteResult
			if strings.TrimSpace(app.Day) != "" {
				d, err := store.Day(p, app.Day)
				if err != nil {
					return writeErr(cmd, err)
				}
				res, err = publish.WriteDay(p, d.ID, to, opt)
				if err != nil {
					return writeErr(cmd, err)
				}
			} else {
				res, err = publish.WriteProgram(p, to, opt)
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, publishResult{res})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory (required)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing pages")
	cmd.Flags().BoolVar(&notes, "notes", false, "Include exercise notes")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

type publishResult struct {
	publish.WriteResult
}

func (r publishResult) WriteText(w io.Writer) error {
	for _, p := range r.Written {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}
