package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"opportunity-finder/internal/scheduler"
	"opportunity-finder/internal/services"
	"opportunity-finder/internal/storage/sqlstore"
	"opportunity-finder/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := sqlstore.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	reportSvc, err := services.NewReportService(store)
	if err != nil {
		return fmt.Errorf("creating report service: %w", err)
	}

	if cfg.Scheduler.Enabled {
		log.Println("INFO: scheduler enabled in config, initializing...")
		appScheduler, err := scheduler.NewScheduler(reportSvc, cfg.Scheduler.ReportCronSpec)
		if err != nil {
			return err
		}
		appScheduler.Start()
		defer appScheduler.Stop()
	} else {
		log.Println("INFO: scheduler disabled in config.")
	}

	router, err := web.SetupRouter(cfg, store, reportSvc)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("INFO: HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Printf("INFO: received %s, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Println("INFO: HTTP server stopped.")
	return nil
}
