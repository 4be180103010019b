package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/minhpq/depcycle/internal/config"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize depcycle configuration interactively",
	Long: `Guides you through setting up depcycle configuration step by step.
Creates the global config file with rendering and cache settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func runInit(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()

	cellWidth := strconv.Itoa(cfg.CellWidth)
	cacheEnabled := cfg.CacheEnabled
	cacheDir := cfg.CacheDir
	sourceFallback := cfg.SourceFallback

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Matrix cell width").
				Description("Column width of rendered cycle matrix cells").
				Placeholder(cellWidth).
				Value(&cellWidth).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 || n > 120 {
						return fmt.Errorf("enter a number between 1 and 120")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Enable the analysis cache?").
				Description("Caches rendered reports keyed by input digest").
				Value(&cacheEnabled),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	if cacheEnabled {
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Cache directory").
					Placeholder(cacheDir).
					Value(&cacheDir),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
	}

	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Recover nesting from C sources?").
				Description("Use --source to rebuild statement metadata when the candl output lacks it").
				Value(&sourceFallback),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	cfg.CellWidth, _ = strconv.Atoi(cellWidth)
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheDir = cacheDir
	cfg.SourceFallback = sourceFallback

	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := cfg.SaveGlobal()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
	return nil
}

func init() {
	RootCmd.AddCommand(initCmd)
}
