package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"maptrack/internal/config"
	"maptrack/internal/geo"
	"maptrack/internal/tracker"
	"maptrack/internal/tui"
	"maptrack/internal/workout"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored workouts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, slot, err := openSlot()
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := slot.Load()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No workouts yet.")
			return nil
		}

		units := tui.NewUnits(cfg.Display)
		for i := len(records) - 1; i >= 0; i-- {
			rec := records[i]
			fmt.Printf("%s %-24s %9s %8s %12s  %s\n",
				rec.Kind.Icon(),
				rec.Description,
				units.FormatDistance(rec.Distance),
				units.FormatDuration(rec.Duration),
				units.FormatMetric(rec),
				humanize.Time(rec.CreatedAt),
			)
		}

		s := tracker.Summarize(records)
		fmt.Printf("\n%s workouts, %s %s in total\n",
			humanize.Comma(int64(len(records))),
			humanize.FtoaWithDigits(s.RunDistance+s.RideDistance, 1),
			units.DistanceLabel(),
		)
		return nil
	},
}

var addFlags struct {
	kind      string
	lat, lng  float64
	distance  float64
	duration  float64
	cadence   float64
	elevation float64
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a workout without the map",
	Example: `  maptrack add --type running --lat 51.5 --lng -0.12 --distance 5 --duration 30 --cadence 150
  maptrack add --type cycling --lat 51.5 --lng -0.12 --distance 20 --duration 60 --elevation 300`,
	RunE: func(cmd *cobra.Command, args []string) error {
		at := geo.Coords{Lat: addFlags.lat, Lng: addFlags.lng}
		if !at.Valid() {
			return fmt.Errorf("position %s is out of range", at)
		}

		db, slot, err := openSlot()
		if err != nil {
			return err
		}
		defer db.Close()

		t := tracker.New(slot, tracker.Views{}, tracker.Options{Zoom: cfg.Map.Zoom}, logrus.NewEntry(log))
		t.Start()

		rec, err := t.Submit(workout.Draft{
			Kind:          workout.Kind(addFlags.kind),
			Coords:        at,
			Distance:      addFlags.distance,
			Duration:      addFlags.duration,
			Cadence:       addFlags.cadence,
			ElevationGain: addFlags.elevation,
		})
		if err != nil {
			var inputErr *tracker.InputError
			if errors.As(err, &inputErr) {
				fmt.Fprintln(os.Stderr, inputErr.Message)
			}
			return err
		}

		units := tui.NewUnits(cfg.Display)
		fmt.Printf("Saved %s %s (%s)\n", rec.Kind.Icon(), rec.Description, units.FormatMetric(rec))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals and pace/speed trends",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, slot, err := openSlot()
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := slot.Load()
		if err != nil {
			return err
		}
		stats := tui.NewStatsModel(tracker.Summarize(records), tui.NewUnits(cfg.Display), 80)
		fmt.Println(stats.View())
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every stored workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, slot, err := openSlot()
		if err != nil {
			return err
		}
		defer db.Close()

		t := tracker.New(slot, tracker.Views{}, tracker.Options{}, logrus.NewEntry(log))
		if err := t.Reset(); err != nil {
			return err
		}
		fmt.Println("All workouts deleted.")
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example config file if none exists",
	// config init must work before a valid config exists
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := config.CreateExample(configFile)
		if err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}

		path := configFile
		if path == "" {
			dir, _ := config.GetConfigDir()
			path = filepath.Join(dir, "config.json")
		}
		if !written {
			fmt.Printf("Config already exists at %s\n", path)
			return nil
		}
		fmt.Printf("Wrote example config to %s\n", path)
		return nil
	},
}

func init() {
	f := addCmd.Flags()
	f.StringVarP(&addFlags.kind, "type", "t", string(workout.Running), "Workout type: running or cycling")
	f.Float64Var(&addFlags.lat, "lat", 0, "Latitude")
	f.Float64Var(&addFlags.lng, "lng", 0, "Longitude")
	f.Float64VarP(&addFlags.distance, "distance", "d", 0, "Distance in km")
	f.Float64Var(&addFlags.duration, "duration", 0, "Duration in minutes")
	f.Float64Var(&addFlags.cadence, "cadence", 0, "Cadence in steps/min (running)")
	f.Float64Var(&addFlags.elevation, "elevation", 0, "Elevation gain in meters (cycling)")
	_ = addCmd.MarkFlagRequired("lat")
	_ = addCmd.MarkFlagRequired("lng")

	configCmd.AddCommand(configInitCmd)
}
