package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/bootstrap"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// storefront serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	Long: "Start the HTTP server. With QUEUE_DRIVER=memory the queue workers run in this\n" +
		"process; with QUEUE_DRIVER=redis run `storefront queue:work` separately.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sf, err := bootstrap.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer sf.Close()

		if cfg.Queue.Driver == "" || cfg.Queue.Driver == "memory" {
			sf.Queue.Start(ctx)
		}

		logger.Info("storefront starting", "port", cfg.App.Port, "env", cfg.App.Env)
		return sf.HTTP.Serve(ctx)
	},
}

// storefront route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		sf, err := bootstrap.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer sf.Close()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range sf.HTTP.Router().Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
