// Package cli wires configuration, storage and the palette into the
// cmdpalette command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cmdpalette/config"
	"cmdpalette/db"
	"cmdpalette/palette"
	"cmdpalette/registry"
	"cmdpalette/runner"
	"cmdpalette/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
)

var errAlreadyRunning = errors.New("another cmdpalette instance is using the settings store")

type App struct {
	ConfigPath  string
	CatalogPath string
	DBPath      string

	cfg        config.Config
	logFile    *os.File
	store      *db.DB
	catalog    *registry.Catalog
	dispatcher *runner.Dispatcher
	palette    *palette.Palette
	lock       *flock.Flock
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "cmdpalette",
		Short:        "Searchable command palette",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive palette
  cmdpalette

  # Scriptable commands
  cmdpalette list --search save
  cmdpalette exec file-save
  cmdpalette recent
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(true); err != nil {
				return err
			}
			defer app.Close()
			return app.runTUI()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default ~/.config/cmdpalette/config.toml)")
	cmd.PersistentFlags().StringVar(&app.CatalogPath, "catalog", "", "action catalog file (overrides config)")
	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "settings database (overrides config)")

	cmd.AddCommand(
		newListCmd(app),
		newExecCmd(app),
		newRecentCmd(app),
	)

	return cmd
}

// open loads configuration and builds the palette. exclusive takes the
// process lock guarding the settings store. On error, whatever was opened is
// released.
func (a *App) open(exclusive bool) (err error) {
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	cfg, err := config.LoadFile(a.ConfigPath)
	if err != nil {
		return err
	}
	if a.CatalogPath != "" {
		cfg.Catalog.Path = a.CatalogPath
	}
	if a.DBPath != "" {
		cfg.Database.Path = a.DBPath
	}
	a.cfg = cfg

	if err := a.setupLogging(); err != nil {
		return err
	}

	if exclusive {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
		a.lock = flock.New(cfg.Database.Path + ".lock")
		locked, err := a.lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire process lock: %w", err)
		}
		if !locked {
			return errAlreadyRunning
		}
	}

	if cfg.Catalog.Path == "" {
		a.catalog = registry.Default()
	} else {
		a.catalog, err = registry.Load(cfg.Catalog.Path)
		if err != nil {
			return err
		}
	}

	a.store, err = db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}

	formatter, err := palette.FormatterByName(cfg.Palette.ShortcutFormat, cfg.Palette.Platform)
	if err != nil {
		return err
	}

	a.dispatcher = runner.NewDispatcher(a.catalog, log.Default())
	a.palette = palette.New(a.catalog, a.catalog, a.dispatcher, a.store,
		palette.WithShortcutFormatter(formatter),
		palette.WithMaxRecent(cfg.Palette.MaxRecent),
		palette.WithLogger(log.Default()),
	)
	return nil
}

// setupLogging sends the standard logger to the configured file. The
// terminal belongs to the UI, so without a file logs are discarded.
func (a *App) setupLogging() error {
	if a.cfg.Log.File == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(a.cfg.Log.File, "cmdpalette")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logFile = f
	return nil
}

func (a *App) runTUI() error {
	p := tea.NewProgram(ui.NewApp(a.palette, a.dispatcher.Runs()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run palette: %w", err)
	}
	return nil
}

// Close releases the store, the lock and the log file.
func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.lock != nil {
		errs = append(errs, a.lock.Unlock())
		a.lock = nil
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
		a.logFile = nil
	}
	return errors.Join(errs...)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
