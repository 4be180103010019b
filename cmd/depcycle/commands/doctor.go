package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/minhpq/depcycle/internal/config"
	"github.com/minhpq/depcycle/pkg/candl"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := false

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(out, "FAIL config: %v\n", err)
			failed = true
			cfg = config.DefaultConfig()
		} else {
			fmt.Fprintln(out, "OK   config loads and validates")
		}

		if cfg.CacheEnabled {
			if err := checkWritable(cfg.CacheDir); err != nil {
				fmt.Fprintf(out, "FAIL cache dir %s: %v\n", cfg.CacheDir, err)
				failed = true
			} else {
				fmt.Fprintf(out, "OK   cache dir %s is writable\n", cfg.CacheDir)
			}
		} else {
			fmt.Fprintln(out, "SKIP cache disabled")
		}

		// Sanity-check the parser against a known-good edge line.
		if _, ok := candl.ParseEdgeLine("S1 -> S2 (ref 0->0, var a->a)"); ok {
			fmt.Fprintln(out, "OK   edge grammar self-test")
		} else {
			fmt.Fprintln(out, "FAIL edge grammar self-test")
			failed = true
		}

		if failed {
			return fmt.Errorf("doctor found problems")
		}
		return nil
	},
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}
