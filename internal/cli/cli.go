// Package cli defines the command surface. Bare invocation starts the
// TUI; export, import and reset mirror the settings-page data actions
// for scripted use.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"studyplan/internal/config"
	"studyplan/internal/export"
	"studyplan/internal/logging"
	"studyplan/internal/notify"
	"studyplan/internal/store"
	"studyplan/internal/tui"
	"studyplan/internal/views"
)

type env struct {
	cfg     config.Config
	planner *store.Planner
	store   *store.Store
	logger  zerolog.Logger
	closeFn func()
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.closeFn != nil {
		e.closeFn()
	}
}

func setup(configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	s, err := store.New(cfg.Database)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open database: %w", err)
	}

	planner, err := store.Open(s)
	if err != nil {
		s.Close()
		closeLog()
		return nil, fmt.Errorf("load planner: %w", err)
	}

	logger.Debug().Str("database", cfg.Database).Msg("planner opened")
	return &env{cfg: cfg, planner: planner, store: s, logger: logger, closeFn: closeLog}, nil
}

// NewRootCmd builds the studyplan command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "studyplan",
		Short: "Terminal planner for classes, assignments and study goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(configPath)
			if err != nil {
				return err
			}
			defer e.close()

			bus := notify.NewBus()
			app := tui.NewApp(e.planner, bus, e.logger, e.cfg.ExportDir)
			p := tea.NewProgram(app, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	root.SilenceUsage = true

	root.AddCommand(newExportCmd(&configPath))
	root.AddCommand(newImportCmd(&configPath))
	root.AddCommand(newResetCmd(&configPath))
	return root
}

func newExportCmd(configPath *string) *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of all planner data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("unknown format %q (json or csv)", format)
			}

			e, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			now := time.Now()
			path := out
			if path == "" {
				path = filepath.Join(e.cfg.ExportDir, export.DefaultFilename(now, format))
			}

			if format == "json" {
				err = export.ToJSON(e.planner, path, now)
			} else {
				err = export.ToCSV(views.ByDueDate(e.planner.Assignments.All()), path)
			}
			if err != nil {
				e.logger.Error().Err(err).Str("path", path).Msg("export failed")
				return err
			}

			e.logger.Info().Str("path", path).Msg("exported backup")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "export format (json or csv)")
	cmd.Flags().StringVar(&out, "out", "", "output path (default: dated file in export dir)")
	return cmd
}

func newImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Replace all planner data with a backup's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			backup, err := export.ParseBackup(data)
			if err != nil {
				return err
			}

			e, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			if err := export.Restore(e.planner, backup); err != nil {
				e.logger.Error().Err(err).Msg("restore failed")
				return err
			}

			e.logger.Info().Str("path", args[0]).Msg("restored backup")
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d classes, %d assignments, %d goals\n",
				len(backup.Timetable), len(backup.Assignments), len(backup.Goals))
			return nil
		},
	}
}

func newResetCmd(configPath *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every class, assignment and goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}

			e, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.planner.Timetable.ClearAll(); err != nil {
				return err
			}
			if err := e.planner.Assignments.Clear(); err != nil {
				return err
			}
			if err := e.planner.Goals.Clear(); err != nil {
				return err
			}

			e.logger.Info().Msg("all data reset")
			fmt.Fprintln(cmd.OutOrStdout(), "all data reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")
	return cmd
}
