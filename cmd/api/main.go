package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/charforge-backend/config"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/alerting"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/bootstrap"
	genservice "github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/service"
	sheetservice "github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/service"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/jobs"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/logging"
	snapservice "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.SetLevel(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshots, err := bootstrap.OpenSnapshotStore(ctx, cfg)
	if err != nil {
		log.Fatalf("snapshot store: %v", err)
	}
	defer snapshots.Close()

	sheetRepo, pool, err := bootstrap.OpenSheetRepository(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("sheet repository: %v", err)
	}
	if pool != nil {
		defer pool.Close()
	}

	bridge := snapservice.NewBridge(snapshots.Store)
	generator := genservice.NewGenerator(
		genservice.NewImageClient(cfg.ImageService),
		bridge,
		alerting.NewPolicy(cfg.Alerts.SuppressTransport),
		genservice.NewFunFacts(nil),
	)
	sheets := sheetservice.NewSheetService(sheetRepo, bridge)

	scheduler := jobs.NewScheduler()
	if err := scheduler.AddMetricsReport(cfg.Jobs.MetricsReportCron); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	evictors := map[string]jobs.Evictor{"generator": generator, "sheets": sheets}
	if err := scheduler.AddSessionEviction(cfg.Jobs.SessionEvictCron, cfg.Jobs.SessionIdleTTL, evictors); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DB:             pool,
		Redis:          snapshots.Redis,
		Generator:      generator,
		Sheets:         sheets,
		Bridge:         bridge,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%s (env=%s, snapshot=%s)", cfg.Server.Port, cfg.App.Environment, cfg.Snapshot.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
