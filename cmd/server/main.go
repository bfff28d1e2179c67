package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/outreach-scheduler/internal/api"
	"github.com/ignite/outreach-scheduler/internal/config"
	"github.com/ignite/outreach-scheduler/internal/mailing"
	"github.com/ignite/outreach-scheduler/internal/repository/postgres"
	"github.com/ignite/outreach-scheduler/internal/schedule"
	"github.com/ignite/outreach-scheduler/internal/service/sequence"
	"github.com/ignite/outreach-scheduler/internal/worker"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("Outreach Scheduler API server starting...")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
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

	repo := postgres.NewSequenceRepo(db)
	engine := schedule.NewEngine(schedule.RealClock{})
	svc := sequence.NewService(repo, engine)

	// The manual tick endpoint needs a scheduler, but the API server
	// never runs the ticker loop itself; the worker binary owns that.
	var scheduler *worker.SendScheduler
	if cfg.Redis.URL != "" {
		caps, err := worker.NewDailyCapCounterFromURL(cfg.Redis.URL)
		if err != nil {
			log.Printf("Warning: Redis unavailable, tick endpoint disabled: %v", err)
		} else {
			sender, err := buildSender(cfg)
			if err != nil {
				log.Printf("Warning: SES sender unavailable, tick endpoint disabled: %v", err)
			} else {
				scheduler = worker.NewSendScheduler(svc, repo, caps, sender, nil, worker.SendSchedulerConfig{
					Interval:   cfg.Sending.Interval(),
					PageSize:   cfg.Sending.PageSize,
					NumWorkers: cfg.Sending.NumWorkers,
				})
			}
		}
	}

	server := api.NewServer(svc, engine, scheduler)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: server.Router(),
	}

	go func() {
		log.Printf("Listening on %s", cfg.Server.Addr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	db.Close()
	log.Println("Server stopped")
}

func buildSender(cfg *config.Config) (*mailing.SESSender, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return mailing.NewSESSender(ctx, cfg.SES)
}
