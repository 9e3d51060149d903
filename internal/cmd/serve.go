package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/branch-roster/internal/application"
	"github.com/example/branch-roster/internal/config"
	httptransport "github.com/example/branch-roster/internal/http"
	"github.com/example/branch-roster/internal/logging"
	"github.com/example/branch-roster/internal/persistence/sqlite"
	"github.com/example/branch-roster/internal/roster"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the roster HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	logger := logging.New(os.Stdout, slog.LevelInfo)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	employeeRepo := sqlite.NewEmployeeRepository(pool)
	scheduleRepo := sqlite.NewScheduleRepository(pool)
	attendanceRepo := sqlite.NewAttendanceRepository(pool)
	noteRepo := sqlite.NewNoteRepository(pool)

	engine := roster.NewEngine(nil)

	employeeService := application.NewEmployeeService(employeeRepo, logger)
	scheduleService := application.NewScheduleService(scheduleRepo, employeeRepo, noteRepo, logger)
	assignmentService := application.NewAssignmentService(employeeRepo, scheduleRepo, engine, logger)
	attendanceService := application.NewAttendanceService(attendanceRepo, employeeRepo, time.Now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Employees:   httptransport.NewEmployeeHandler(employeeService, logger),
		Schedules:   httptransport.NewScheduleHandler(scheduleService, logger),
		Assignments: httptransport.NewAssignmentHandler(assignmentService, logger),
		Attendance:  httptransport.NewAttendanceHandler(attendanceService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.RequireToken(cfg.APITokenHash, logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("roster API listening", "addr", server.Addr,
		"branch_a", cfg.BranchALabel, "branch_b", cfg.BranchBLabel)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		return err
	}
	return nil
}
