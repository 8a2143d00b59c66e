package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/couchcryptid/route-hazard-engine/internal/domain"
	"github.com/couchcryptid/route-hazard-engine/internal/scenario"
	"github.com/spf13/cobra"
)

func genmockCmd() *cobra.Command {
	var (
		out    string
		name   string
		ndjson bool
	)

	cmd := &cobra.Command{
		Use:   "genmock",
		Short: "Write the scenario catalog snapshots as JSON fixtures",
		Long: `Write the scenario catalog snapshots as a JSON array, or one snapshot
per line with --ndjson for piping into a Kafka console producer.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshots := scenario.Snapshots()
			if name != "" {
				sc, ok := scenario.Find(name)
				if !ok {
					return fmt.Errorf("unknown scenario %q (known: %v)", name, scenario.Names())
				}
				snapshots = []domain.RouteSnapshot{sc.Snapshot}
			}

			w := cmd.OutOrStdout()
			if out != "" {
				if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := writeSnapshots(w, snapshots, ndjson); err != nil {
				return fmt.Errorf("write snapshots: %w", err)
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d snapshots to %s\n", len(snapshots), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&name, "scenario", "", "write only the named scenario")
	cmd.Flags().BoolVar(&ndjson, "ndjson", false, "write one compact snapshot per line")
	return cmd
}

func writeSnapshots(w io.Writer, snapshots []domain.RouteSnapshot, ndjson bool) error {
	if !ndjson {
		return writeIndented(w, snapshots)
	}
	enc := json.NewEncoder(w)
	for _, s := range snapshots {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}
