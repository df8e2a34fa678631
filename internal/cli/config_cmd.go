package cli

import (
	"fmt"

	"setgrid/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	var showPath bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showPath {
				path := app.ConfigPath
				if path == "" {
					p, err := config.ConfigPath()
					if err != nil {
						return writeErr(cmd, err)
					}
					path = p
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			}
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := cfg.Encode()
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), s)
			return err
		},
	}
	cmd.Flags().BoolVar(&showPath, "path", false, "Print the config file path instead")
	return cmd
}
