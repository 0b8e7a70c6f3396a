package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/bootstrap"
)

var queueWorkersFlag int

// storefront queue:work
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cmd.Flags().Changed("workers") {
			cfg.Queue.Workers = queueWorkersFlag
		}
		if cfg.Queue.Driver != "redis" {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: QUEUE_DRIVER is not redis; this worker only sees jobs it dispatches itself")
		}

		sf, err := bootstrap.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer sf.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "🚀 Queue worker started (%d workers). Press Ctrl+C to stop.\n", cfg.Queue.Workers)
		sf.Queue.Start(ctx)

		<-ctx.Done()
		fmt.Fprintln(cmd.OutOrStdout(), "\n⚡ Queue worker stopping…")
		return nil
	},
}

// storefront queue:failed
var queueFailedCmd = &cobra.Command{
	Use:   "queue:failed",
	Short: "List jobs that exhausted their attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		sf, err := bootstrap.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer sf.Close()

		failed, err := sf.Queue.FailedJobs(cmd.Context())
		if err != nil {
			return err
		}
		if len(failed) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No failed jobs.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tJOB\tATTEMPTS\tFAILED AT\tERROR")
		for _, f := range failed {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", f.ID, f.JobType, f.Attempts, f.FailedAt.Format("2006-01-02 15:04:05"), f.Error)
		}
		return w.Flush()
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 2, "Number of concurrent workers (overrides QUEUE_WORKERS)")
}
