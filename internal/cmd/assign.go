package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/branch-roster/internal/application"
	"github.com/example/branch-roster/internal/config"
	"github.com/example/branch-roster/internal/logging"
	"github.com/example/branch-roster/internal/persistence/sqlite"
	"github.com/example/branch-roster/internal/roster"
)

var assignFlags struct {
	start     string
	days      int
	overwrite bool
	offCap    int
}

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Run automatic shift assignment against the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssign(cmd.Context())
	},
}

func init() {
	assignCmd.Flags().StringVar(&assignFlags.start, "start", "", "first date to assign (YYYY-MM-DD, default today)")
	assignCmd.Flags().IntVar(&assignFlags.days, "days", 7, "number of days to assign")
	assignCmd.Flags().BoolVar(&assignFlags.overwrite, "overwrite", false, "discard existing rosters instead of filling around them")
	assignCmd.Flags().IntVar(&assignFlags.offCap, "off-cap", 0, "weekly days-off preference cap (0 uses the configured default)")
	rootCmd.AddCommand(assignCmd)
}

func runAssign(ctx context.Context) error {
	logger := logging.New(os.Stdout, slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return err
	}

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		return err
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	start := assignFlags.start
	if start == "" {
		start = time.Now().Format(roster.DateLayout)
	}
	offCap := assignFlags.offCap
	if offCap == 0 {
		offCap = cfg.WeeklyOffCap
	}

	service := application.NewAssignmentService(
		sqlite.NewEmployeeRepository(pool),
		sqlite.NewScheduleRepository(pool),
		roster.NewEngine(nil),
		logger,
	)

	result, err := service.Assign(ctx, application.AssignParams{
		Start:        start,
		Days:         assignFlags.days,
		Overwrite:    assignFlags.overwrite,
		WeeklyOffCap: offCap,
	})
	if err != nil {
		logger.Error("assignment failed", "error", err, "error_kind", application.ErrorKind(err))
		return err
	}

	logger.Info("assignment completed",
		"start", result.Start, "end", result.End, "days", result.Days, "employees", result.Employees)
	return nil
}
