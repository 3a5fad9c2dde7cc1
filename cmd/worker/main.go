package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/sentinel/internal/compare"
	"github.com/your-org/sentinel/internal/config"
	"github.com/your-org/sentinel/internal/eventlog"
	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/internal/observability"
	"github.com/your-org/sentinel/internal/queue"
	"github.com/your-org/sentinel/internal/roster"
	"github.com/your-org/sentinel/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	metricsPort := flag.Int("metrics-port", 9090, "prometheus metrics port")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting Sentinel comparison worker", "workers", cfg.Compare.WorkerCount)

	// Connect to Postgres
	db, err := storage.NewPostgresStore(cfg.Database)
	if err != nil {
		slog.Error("connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to MinIO
	frames, err := storage.NewMinIOStore(cfg.MinIO)
	if err != nil {
		slog.Error("connect to minio", "error", err)
		os.Exit(1)
	}

	// Connect to NATS
	producer, err := queue.NewProducer(cfg.NATS.URL)
	if err != nil {
		slog.Error("connect to nats producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	if err := producer.EnsureStreams(context.Background()); err != nil {
		slog.Warn("ensure nats streams", "error", err)
	}

	// Services
	logSvc := eventlog.NewService(db, cfg.Logs.DefaultLimit, cfg.Logs.MaxLimit)
	rosterSvc := roster.NewService(db, logSvc)

	ranker, err := compare.NewGeminiRanker(context.Background(), cfg.Compare)
	if err != nil {
		slog.Error("init compare ranker", "error", err)
		os.Exit(1)
	}
	compareSvc := compare.NewService(ranker, rosterSvc, logSvc)

	slog.Info("compare ranker ready", "model", cfg.Compare.Model)

	// Frame tasks expire with the stream but their snapshots don't. Sweep
	// what a previous run left behind, sparing anything young enough to still
	// be referenced by a pending task.
	if snaps, err := frames.ListSnapshots(context.Background()); err != nil {
		slog.Warn("list leftover snapshots", "error", err)
	} else if keys := storage.StaleSnapshots(snaps, time.Now().Add(-queue.FramesMaxAge)); len(keys) > 0 {
		for _, key := range keys {
			if err := frames.DeleteSnapshot(context.Background(), key); err != nil {
				slog.Warn("delete stale snapshot", "key", key, "error", err)
			}
		}
		slog.Info("swept stale snapshots", "count", len(keys))
	}

	// Create NATS consumer
	consumer, err := queue.NewConsumer(cfg.NATS.URL)
	if err != nil {
		slog.Error("create consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Consume frame snapshot tasks: fetch the JPEG, rank it against the
	// roster, drop the snapshot once handled.
	err = consumer.ConsumeFrames(ctx, "compare-workers", func(ctx context.Context, msg jetstream.Msg) error {
		var task models.FrameTask
		if err := json.Unmarshal(msg.Data(), &task); err != nil {
			slog.Error("unmarshal frame task", "error", err)
			return nil // Don't retry on unmarshal errors
		}

		probe, err := frames.GetSnapshot(ctx, task.SnapshotKey)
		if err != nil {
			return fmt.Errorf("load snapshot %s: %w", task.SnapshotKey, err)
		}

		res, err := compareSvc.CompareProbe(ctx, probe, task.ClientID)
		if err != nil {
			return fmt.Errorf("compare frame %s: %w", task.FrameID, err)
		}

		evt := models.MatchEvent{
			ClientID:   task.ClientID,
			Timestamp:  time.Now().UTC(),
			Matched:    res.Matched,
			SoldierID:  res.SoldierID,
			Name:       res.Name,
			Candidates: res.Candidates,
		}
		if err := producer.PublishMatch(ctx, task.ClientID, evt); err != nil {
			slog.Warn("publish match event", "client_id", task.ClientID, "error", err)
		}

		if err := frames.DeleteSnapshot(ctx, task.SnapshotKey); err != nil {
			slog.Warn("delete processed snapshot", "key", task.SnapshotKey, "error", err)
		}

		return nil
	}, cfg.Compare.WorkerCount)
	if err != nil {
		slog.Error("start frame consumer", "error", err)
		os.Exit(1)
	}

	// Metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", *metricsPort)
		slog.Info("worker metrics listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Warn("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down worker...")
	cancel()
	time.Sleep(time.Second) // let in-flight handlers finish

	slog.Info("worker stopped")
}
