package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deppfellow/core-routing/internal/config"
	"github.com/deppfellow/core-routing/internal/handler"
	"github.com/deppfellow/core-routing/internal/logger"
	"github.com/deppfellow/core-routing/internal/router"
	"github.com/deppfellow/core-routing/internal/server"
	"github.com/deppfellow/core-routing/internal/service"
)

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()

	rootCmd := &cobra.Command{
		Use:          "coreroute",
		Short:        "Demo HTTP service that echoes routed requests as text",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}

	rootCmd.AddCommand(serveCmd, newRoutesCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the API route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tTEMPLATE\tCONSUMES\tDESCRIPTION")
			for _, route := range router.Routes() {
				consumes := strings.Join(route.Consumes, ",")
				if consumes == "" {
					consumes = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", route.Method, route.Template, consumes, route.Description)
			}
			return w.Flush()
		},
	}
}

func serve(parent context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize logger service: %w", err)
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return err
	}

	services := service.NewServices(srv)
	handlers := handler.NewHandlers(srv, services, router.RouteCount)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
		loggerService.Shutdown()
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	if err := <-serveErr; err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
