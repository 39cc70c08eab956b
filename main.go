package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"maptrack/internal/config"
	"maptrack/internal/geo"
	"maptrack/internal/logger"
	"maptrack/internal/store"
	"maptrack/internal/tui"
)

var (
	configFile string
	logLevel   string

	cfg       *config.Config
	log       *logrus.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "maptrack",
	Short: "Log runs and rides by clicking a map",
	Long: `maptrack is a terminal workout logger. Click a spot on the map, fill in
distance and duration, and the workout is pinned there with its pace or speed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (default ~/.maptrack/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(listCmd, addCmd, statsCmd, resetCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log, logCloser, err = logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	return nil
}

// openSlot opens the database and the workout slot inside it
func openSlot() (*store.DB, *store.WorkoutSlot, error) {
	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	slot := store.NewWorkoutSlot(db, cfg.Storage.Key, log.WithField("component", "store"))
	return db, slot, nil
}

func runTUI() error {
	db, slot, err := openSlot()
	if err != nil {
		return err
	}
	defer db.Close()

	locator, err := geo.NewLocator(cfg.Location)
	if err != nil {
		return fmt.Errorf("creating locator: %w", err)
	}

	app := tui.NewApp(slot, locator, *cfg, logrus.NewEntry(log))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
