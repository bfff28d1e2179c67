package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/outreach-scheduler/internal/config"
	"github.com/ignite/outreach-scheduler/internal/mailing"
	"github.com/ignite/outreach-scheduler/internal/repository/postgres"
	"github.com/ignite/outreach-scheduler/internal/schedule"
	"github.com/ignite/outreach-scheduler/internal/service/sequence"
	"github.com/ignite/outreach-scheduler/internal/worker"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func main() {
	log.Println("Outreach Scheduler worker starting...")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifeMins) * time.Minute)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}
	pingCancel()
	log.Println("Connected to PostgreSQL")

	caps, err := worker.NewDailyCapCounterFromURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer caps.Close()
	log.Println("Connected to Redis")

	sesCtx, sesCancel := context.WithTimeout(context.Background(), 10*time.Second)
	sender, err := mailing.NewSESSender(sesCtx, cfg.SES)
	sesCancel()
	if err != nil {
		log.Fatalf("Failed to initialize SES sender: %v", err)
	}

	var exporter worker.DecisionExporter
	if cfg.Audit.Enabled && cfg.Audit.Bucket != "" {
		auditCtx, auditCancel := context.WithTimeout(context.Background(), 10*time.Second)
		auditExporter, err := worker.NewAuditExporter(auditCtx, cfg.Audit.Bucket, cfg.Audit.Region)
		auditCancel()
		if err != nil {
			log.Printf("Warning: audit exporter disabled: %v", err)
		} else {
			exporter = auditExporter
			log.Printf("Decision audit export enabled: s3://%s", cfg.Audit.Bucket)
		}
	}

	repo := postgres.NewSequenceRepo(db)
	engine := schedule.NewEngine(schedule.RealClock{})
	svc := sequence.NewService(repo, engine)

	scheduler := worker.NewSendScheduler(svc, repo, caps, sender, exporter, worker.SendSchedulerConfig{
		Interval:   cfg.Sending.Interval(),
		PageSize:   cfg.Sending.PageSize,
		NumWorkers: cfg.Sending.NumWorkers,
	})

	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	log.Printf("Scheduler running (tick every %s, page size %d, %d workers)",
		cfg.Sending.Interval(), cfg.Sending.PageSize, cfg.Sending.NumWorkers)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	scheduler.Stop()

	sent, skipped, failed := scheduler.Stats()
	log.Printf("Final stats: sent=%d skipped=%d failed=%d", sent, skipped, failed)

	db.Close()
	log.Println("Worker stopped")
}
