package main

import (
	"fmt"

	"github.com/couchcryptid/route-hazard-engine/internal/domain"
	"github.com/couchcryptid/route-hazard-engine/internal/scenario"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Evaluate every catalog scenario and check the expected outcome",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Scenario timestamps are fixed relative to BaseTime.
			domain.SetClock(clockwork.NewFakeClockAt(scenario.BaseTime))
			defer domain.SetClock(nil)

			evaluator := domain.NewEvaluator(domain.DefaultOptions())
			out := cmd.OutOrStdout()

			failed := 0
			for _, sc := range scenario.All() {
				problems := sc.Check(evaluator.Evaluate(sc.Snapshot))
				if len(problems) == 0 {
					fmt.Fprintf(out, "PASS  %s\n", sc.Name)
					continue
				}
				failed++
				fmt.Fprintf(out, "FAIL  %s\n", sc.Name)
				for _, p := range problems {
					fmt.Fprintf(out, "      %s\n", p)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(scenario.All()))
			}
			return nil
		},
	}
}
