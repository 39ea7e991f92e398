package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/idimitrov/docsorter/internal/bootstrap"
	"github.com/idimitrov/docsorter/internal/config"
	"github.com/idimitrov/docsorter/internal/infrastructure/repository/postgres"
	"github.com/idimitrov/docsorter/internal/report"
)

func main() {
	reportPath := flag.String("report", "", "export the sort history to the given XLSX file and exit")
	reportLimit := flag.Int("report-limit", 1000, "maximum number of history records to export")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *reportPath != "" {
		if err := exportReport(ctx, cfg, *reportPath, *reportLimit); err != nil {
			log.Fatalf("report error: %v", err)
		}
		return
	}

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	if cfg.MetricsPort != "" {
		go serveMetrics(app, cfg.MetricsPort)
	}

	app.Poller.OnWait = func(remaining time.Duration) {
		fmt.Printf("\rWaiting for documents | Next check in: %ds", int(remaining.Seconds()))
	}

	if err := app.Poller.Run(ctx); err != nil {
		log.Fatalf("poller error: %v", err)
	}
	fmt.Println()
}

func serveMetrics(app *bootstrap.App, port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.Metrics.Handler())
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	app.Logger.Info("metrics listening", "port", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.Logger.Error("metrics server stopped", "error", err)
	}
}

func exportReport(ctx context.Context, cfg config.Config, path string, limit int) error {
	if cfg.HistoryDSN == "" {
		return fmt.Errorf("SORTER_HISTORY_DSN must be set for report export")
	}
	db, err := postgres.OpenDB(cfg.HistoryDSN)
	if err != nil {
		return fmt.Errorf("open history db: %w", err)
	}
	defer db.Close()

	exporter := report.NewExporter(postgres.NewHistoryRepository(db))
	count, err := exporter.Export(ctx, path, limit)
	if err != nil {
		return err
	}
	fmt.Printf("exported %d records to %s\n", count, path)
	return nil
}
