package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/couchcryptid/route-hazard-engine/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func evaluateCmd() *cobra.Command {
	var (
		now           string
		safetyMargin  float64
		window        time.Duration
		maxAlerts     int
		deriveHazards bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <snapshot.json|->",
		Short: "Evaluate one route snapshot and print the evaluation JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := readSnapshot(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if err := domain.ValidateSnapshot(snapshot); err != nil {
				return err
			}

			if now != "" {
				at, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("invalid --now (use RFC3339): %w", err)
				}
				domain.SetClock(clockwork.NewFakeClockAt(at))
				defer domain.SetClock(nil)
			}

			evaluator := domain.NewEvaluator(domain.Options{
				SafetyMarginFt:       safetyMargin,
				AlertWindow:          window,
				MaxAlerts:            maxAlerts,
				DeriveWeatherHazards: deriveHazards,
			})
			return writeIndented(cmd.OutOrStdout(), evaluator.Evaluate(snapshot))
		},
	}

	cmd.Flags().StringVar(&now, "now", "", "evaluation time in RFC3339 (default: current time)")
	cmd.Flags().Float64Var(&safetyMargin, "safety-margin", domain.DefaultSafetyMarginFt, "bridge clearance safety margin in feet")
	cmd.Flags().DurationVar(&window, "window", domain.DefaultAlertWindow, "maximum alert age")
	cmd.Flags().IntVar(&maxAlerts, "max-alerts", domain.DefaultMaxHazardAlerts, "maximum hazard alerts to report")
	cmd.Flags().BoolVar(&deriveHazards, "derive-hazards", false, "derive hazard alerts from waypoint weather")
	return cmd
}

func readSnapshot(stdin io.Reader, path string) (domain.RouteSnapshot, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return domain.RouteSnapshot{}, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	var snapshot domain.RouteSnapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return domain.RouteSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
