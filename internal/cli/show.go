package cli

import (
	"strings"

	"setgrid/internal/store"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the program, or one day with --day",
		Example: strings.TrimSpace(`
  setgrid show --format text
  setgrid show --day lower-a --pretty
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.program()
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.Day == "" || all {
				return writeOut(cmd, app, p)
			}
			d, err := store.Day(p, app.Day)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, d)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Print every day even when --day is set")
	return cmd
}
