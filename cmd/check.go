package cmd

import (
	"fmt"
	"os"

	"lr2immich/core/config"
	"lr2immich/core/logger"
	"lr2immich/feature/checkup"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd verifies that every sync dependency is usable.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check catalog, Immich and cache connectivity",
	Long: `Verifies the configuration and every external dependency of a sync run:
the Lightroom catalog opens and carries the expected schema, the Immich
server answers with the configured API key, and the id cache backend
connects. Exits non-zero when anything is unusable. Outputs log lines by
default or the raw results as JSON with --json.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("json", false, "Output the check results as JSON")

	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	svc := checkup.NewService(cfg, l)
	results := svc.RunAll(cmd.Context())

	if jsonOutput {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Println(string(data))
	} else {
		for _, r := range results {
			if r.OK {
				l.Info("Check passed",
					zap.String("check", r.Name),
					zap.String("detail", r.Detail),
				)
			} else {
				l.Error("Check failed",
					zap.String("check", r.Name),
					zap.String("error", r.Error),
				)
			}
		}
	}

	if !checkup.AllOK(results) {
		_ = l.Sync()
		os.Exit(1)
	}
	if !jsonOutput {
		l.Info("All checks passed")
	}
	return nil
}
