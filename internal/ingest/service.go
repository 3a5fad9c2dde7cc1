// Package ingest receives detection output pushed over the socket channel
// and fans it into the queue and the snapshot store.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/internal/observability"
	"github.com/your-org/sentinel/internal/queue"
	"github.com/your-org/sentinel/internal/storage"
)

type Service struct {
	producer *queue.Producer
	frames   *storage.MinIOStore
}

func NewService(producer *queue.Producer, frames *storage.MinIOStore) *Service {
	return &Service{producer: producer, frames: frames}
}

// HandleLandmarks forwards one landmark frame to the LANDMARKS stream for
// the external consumer side (persisting and viewer broadcast).
func (s *Service) HandleLandmarks(ctx context.Context, clientID string, frame models.LandmarkFrame) error {
	if frame.Type != models.LandmarkHand && frame.Type != models.LandmarkPose {
		return fmt.Errorf("unknown landmark type %q", frame.Type)
	}

	batch := models.LandmarkBatch{
		ClientID:  clientID,
		Timestamp: time.Now().UTC(),
		Frame:     frame,
	}
	if err := s.producer.PublishLandmarks(ctx, clientID, batch); err != nil {
		return err
	}

	observability.LandmarksReceived.WithLabelValues(string(frame.Type)).Inc()
	return nil
}

// HandleFrame stores one raw JPEG snapshot and enqueues it for face
// comparison.
func (s *Service) HandleFrame(ctx context.Context, clientID string, jpeg []byte) error {
	frameID := uuid.New()

	key, err := s.frames.PutSnapshot(ctx, clientID, frameID, jpeg)
	if err != nil {
		return err
	}

	task := models.FrameTask{
		FrameID:     frameID,
		ClientID:    clientID,
		Timestamp:   time.Now().UTC(),
		SnapshotKey: key,
	}
	if err := s.producer.PublishFrame(ctx, clientID, task); err != nil {
		return err
	}

	observability.FramesReceived.WithLabelValues(clientID).Inc()
	return nil
}
