package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"setgrid/internal/config"
	"setgrid/internal/format"
	"setgrid/internal/logger"
	"setgrid/internal/model"
	"setgrid/internal/store"
	"setgrid/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ProgramPath string
	Day         string
	ConfigPath  string
	LogFile     string
	Debug       bool
	Print       bool
	Write       bool
	PrettyJSON  bool
	Format      string

	cfg     *config.Config
	prog    *model.Program
	started bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "setgrid",
		Short:        "Arrange workout days as reorderable, groupable exercise grids",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the built-in program in the TUI
  setgrid

  # Open a program file on a given day and print the result on exit
  setgrid --program push-pull.json --day push --print

  # Shortcut for --program
  setgrid push-pull.json

  # Replay a recorded drag headlessly
  setgrid simulate drag.json --format text
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(app.LogFile, app.Debug); err != nil {
			// Logging is best effort; the commands still work without a log file.
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: logging disabled:", err)
			return nil
		}
		app.started = true
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.started {
			logger.Close()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ProgramPath, "program", envOr("SETGRID_PROGRAM", ""), "Program JSON file (default: built-in program)")
	cmd.PersistentFlags().StringVar(&app.Day, "day", envOr("SETGRID_DAY", ""), "Day id (default: first day)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("SETGRID_CONFIG", ""), "Config file (default: <config dir>/config.toml)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Log file (default: $SETGRID_LOG_FILE or <config dir>/setgrid.log)")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Log at debug level")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SETGRID_FORMAT", "json"), "Output format (json|text)")
	cmd.Flags().BoolVar(&app.Print, "print", false, "Print the program to stdout when the TUI exits")
	cmd.Flags().BoolVar(&app.Write, "write", false, "Save the edited program back to --program when the TUI exits")

	_ = cmd.RegisterFlagCompletionFunc("day", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		p, err := app.program()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		ids := make([]string, 0, len(p.Days))
		for _, d := range p.Days {
			if strings.HasPrefix(d.ID, toComplete) {
				ids = append(ids, d.ID+"\t"+d.Name)
			}
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newSimulateCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newPublishCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	if app.Write && strings.TrimSpace(app.ProgramPath) == "" {
		return writeErr(cmd, errors.New("--write needs --program"))
	}
	cfg, err := app.config()
	if err != nil {
		return writeErr(cmd, err)
	}
	p, err := app.program()
	if err != nil {
		return writeErr(cmd, err)
	}
	dayID := app.Day
	if dayID != "" {
		if _, err := store.Day(p, dayID); err != nil {
			return writeErr(cmd, err)
		}
	}
	catalog, err := store.Catalog()
	if err != nil {
		return writeErr(cmd, err)
	}

	source := store.ProgramSource(app.ProgramPath)
	stateDir, _ := config.ConfigDir()
	state := store.LoadTUIState(stateDir)
	if dayID == "" {
		// A remembered day that no longer exists is ignored.
		if last := state.LastDays[source]; last != "" {
			if _, ok := p.FindDay(last); ok {
				dayID = last
			}
		}
	}

	out, err := tui.Run(tui.Options{
		Program: p,
		DayID:   dayID,
		Catalog: catalog,
		Config:  cfg,
	})
	if err != nil {
		return writeErr(cmd, err)
	}

	if out.DayID != "" {
		if state.LastDays == nil {
			state.LastDays = map[string]string{}
		}
		state.LastDays[source] = out.DayID
		if err := store.SaveTUIState(stateDir, state); err != nil {
			logger.Warn("save tui state", "err", err)
		}
	}
	if app.Write && out.Program != nil {
		if err := store.SaveProgram(app.ProgramPath, out.Program); err != nil {
			return writeErr(cmd, fmt.Errorf("save program: %w", err))
		}
	}
	if (app.Print || out.Print) && out.Program != nil {
		return writeOut(cmd, app, out.Program)
	}
	return nil
}

func (app *App) config() (config.Config, error) {
	if app.cfg != nil {
		return *app.cfg, nil
	}
	var cfg config.Config
	var err error
	if app.ConfigPath != "" {
		cfg, err = config.LoadFile(app.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	app.cfg = &cfg
	return cfg, nil
}

func (app *App) program() (*model.Program, error) {
	if app.prog != nil {
		return app.prog, nil
	}
	p, err := store.LoadProgram(app.ProgramPath)
	if err != nil {
		return nil, err
	}
	app.prog = p
	return p, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut wraps JSON output in a {"data": ...} envelope; text output is written bare.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	if strings.EqualFold(strings.TrimSpace(app.Format), "text") {
		return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
