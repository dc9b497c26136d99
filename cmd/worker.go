package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background workers outside the HTTP server process.`,
}

var upcomingHolidaysWorkerCmd = &cobra.Command{
	Use:   "upcoming-holidays",
	Short: "Report employees with a public holiday in the coming days",
	Long:  `Run the upcoming-holidays scheduler on its configured interval, or once with --once`,
	Run: func(cmd *cobra.Command, args []string) {
		startUpcomingHolidaysWorker()
	},
}

var (
	runOnce          bool
	intervalOverride time.Duration
)

func startUpcomingHolidaysWorker() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	if intervalOverride > 0 {
		deps.Config.Scheduler.Interval = intervalOverride
	}
	sched := newScheduler(deps)
	logger := deps.Logger

	if runOnce {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.Scheduler.Timeout)
		defer cancel()
		if err := sched.RunOnce(ctx); err != nil {
			logger.Error("upcoming holidays run failed", "error", err)
		}
		return
	}

	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("upcoming holidays worker is running. Press Ctrl+C to stop.",
		"interval", deps.Config.Scheduler.Interval.String(),
		"window_days", deps.Config.Scheduler.WindowDays)

	sig := <-sigChan
	logger.Info("received signal, shutting down upcoming holidays worker", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sched.Stop(ctx); err != nil {
		logger.Warn("shutdown timeout reached, forcing exit", "error", err)
	}
	if err := deps.EventBus.Wait(ctx); err != nil {
		logger.Warn("event handlers still running at shutdown", "error", err)
	}
	logger.Info("upcoming holidays worker shutdown complete")
}

func init() {
	upcomingHolidaysWorkerCmd.Flags().BoolVar(&runOnce, "once", false, "Run a single report and exit")
	upcomingHolidaysWorkerCmd.Flags().DurationVar(&intervalOverride, "interval", 0, "Tick interval (overrides config)")

	workerCmd.AddCommand(upcomingHolidaysWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
