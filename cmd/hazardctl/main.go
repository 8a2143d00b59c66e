// Command hazardctl evaluates route snapshots offline and manages the
// scenario fixtures used by the test suites.
//
// Usage:
//
//	hazardctl evaluate snapshot.json --now 2024-01-15T12:00:00Z
//	hazardctl genmock --out data/mock/route_snapshots.json
//	hazardctl verify
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hazardctl",
		Short: "Route hazard engine operator tool",
		Long: `Evaluate route snapshots without Kafka, generate deterministic
snapshot fixtures, and verify the engine against the scenario catalog.`,
		SilenceUsage: true,
	}

	root.AddCommand(evaluateCmd())
	root.AddCommand(genmockCmd())
	root.AddCommand(verifyCmd())
	return root
}
