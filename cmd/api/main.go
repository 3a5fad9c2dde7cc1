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

	"github.com/your-org/sentinel/internal/api"
	"github.com/your-org/sentinel/internal/api/ws"
	"github.com/your-org/sentinel/internal/compare"
	"github.com/your-org/sentinel/internal/config"
	"github.com/your-org/sentinel/internal/eventlog"
	"github.com/your-org/sentinel/internal/ingest"
	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/internal/observability"
	"github.com/your-org/sentinel/internal/queue"
	"github.com/your-org/sentinel/internal/roster"
	"github.com/your-org/sentinel/internal/storage"
	"github.com/your-org/sentinel/internal/vision"
	"github.com/your-org/sentinel/pkg/dto"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting Sentinel Command Center API", "port", cfg.Server.Port)

	// Connect to Postgres
	db, err := storage.NewPostgresStore(cfg.Database)
	if err != nil {
		slog.Error("connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.EnsureSchema(context.Background()); err != nil {
		slog.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	// Connect to MinIO
	frames, err := storage.NewMinIOStore(cfg.MinIO)
	if err != nil {
		slog.Error("connect to minio", "error", err)
		os.Exit(1)
	}
	if err := frames.EnsureBucket(context.Background()); err != nil {
		slog.Warn("ensure minio bucket", "error", err)
	}

	// Connect to NATS
	producer, err := queue.NewProducer(cfg.NATS.URL)
	if err != nil {
		slog.Error("connect to nats", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	if err := producer.EnsureStreams(context.Background()); err != nil {
		slog.Warn("ensure nats streams", "error", err)
	}

	// Services
	logSvc := eventlog.NewService(db, cfg.Logs.DefaultLimit, cfg.Logs.MaxLimit)
	rosterSvc := roster.NewService(db, logSvc)
	ingestSvc := ingest.NewService(producer, frames)

	// Comparison is optional: without an API key the endpoint reports
	// unavailable and the worker binary handles nothing.
	var compareSvc *compare.Service
	if cfg.Compare.APIKey != "" {
		ranker, err := compare.NewGeminiRanker(context.Background(), cfg.Compare)
		if err != nil {
			slog.Warn("compare ranker init failed, /v1/compare will be unavailable", "error", err)
		} else {
			compareSvc = compare.NewService(ranker, rosterSvc, logSvc)
			slog.Info("compare ranker ready", "model", cfg.Compare.Model)
		}
	}

	// WebSocket hub
	hub := ws.NewHub(ingestSvc)
	go hub.Run()

	// Consume landmark batches: persist a detection log entry and broadcast
	// to viewers.
	consumer, err := queue.NewConsumer(cfg.NATS.URL)
	if err != nil {
		slog.Error("create landmark consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = consumer.ConsumeLandmarks(ctx, "api-landmarks", func(ctx context.Context, msg jetstream.Msg) error {
		var batch models.LandmarkBatch
		if err := json.Unmarshal(msg.Data(), &batch); err != nil {
			return err
		}

		logSvc.Append(ctx, vision.Summarize(batch.ClientID, batch.Frame))

		evtType := "hand_detected"
		if batch.Frame.Type == models.LandmarkPose {
			evtType = "pose_detected"
		}

		hub.BroadcastEvent(&dto.WSEvent{
			Type:      evtType,
			ClientID:  batch.ClientID,
			Timestamp: batch.Timestamp.Format(time.RFC3339),
			Count:     len(batch.Frame.Landmarks),
			Kind:      string(batch.Frame.Type),
			Landmarks: wireLandmarks(batch.Frame.Landmarks),
		})

		return nil
	})
	if err != nil {
		slog.Warn("start landmark consumer", "error", err)
	}

	// Consume comparison outcomes published by the worker and forward them to
	// viewers.
	err = consumer.ConsumeEvents(ctx, "api-matches", func(ctx context.Context, msg jetstream.Msg) error {
		var evt models.MatchEvent
		if err := json.Unmarshal(msg.Data(), &evt); err != nil {
			return err
		}

		evtType := "no_match"
		if evt.Matched {
			evtType = "soldier_matched"
		}

		hub.BroadcastEvent(&dto.WSEvent{
			Type:      evtType,
			ClientID:  evt.ClientID,
			Timestamp: evt.Timestamp.Format(time.RFC3339),
			Count:     evt.Candidates,
			SoldierID: evt.SoldierID,
			Name:      evt.Name,
		})

		return nil
	})
	if err != nil {
		slog.Warn("start match event consumer", "error", err)
	}

	// Setup router
	router := api.NewRouter(api.RouterConfig{
		APIKey:   cfg.Server.APIKey,
		DB:       db,
		Frames:   frames,
		Producer: producer,
		Hub:      hub,
		Roster:   rosterSvc,
		Logs:     logSvc,
		Compare:  compareSvc,
	})

	// Start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("API server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logSvc.Record(context.Background(), models.LevelInfo, models.TagSystem, "command center online", nil)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down API server...")
	logSvc.Record(context.Background(), models.LevelInfo, models.TagSystem, "command center shutting down", nil)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("API server stopped")
}

func wireLandmarks(landmarks []models.Landmark) []dto.Landmark {
	out := make([]dto.Landmark, len(landmarks))
	for i, lm := range landmarks {
		out[i] = dto.Landmark{X: lm.X, Y: lm.Y, Z: lm.Z, Visibility: lm.Visibility}
	}
	return out
}
