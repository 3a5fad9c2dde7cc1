package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/your-org/sentinel/internal/config"
)

// snapshotPrefix scopes every stored frame; keys follow
// frames/<client>/<frame-id>.jpg.
const snapshotPrefix = "frames/"

// MinIOStore holds the JPEG frame snapshots pushed over the socket channel.
// It owns the key scheme: callers hand it a client and frame id, never a raw
// object key for writes.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// SnapshotInfo describes one stored frame snapshot.
type SnapshotInfo struct {
	Key          string
	LastModified time.Time
}

func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIOStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// PutSnapshot stores one JPEG frame for the given client and returns the key
// it lives under.
func (s *MinIOStore) PutSnapshot(ctx context.Context, clientID string, frameID uuid.UUID, data []byte) (string, error) {
	key := fmt.Sprintf("%s%s/%s.jpg", snapshotPrefix, clientID, frameID)
	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", fmt.Errorf("put snapshot %s: %w", key, err)
	}
	return key, nil
}

// GetSnapshot retrieves a stored frame by key.
func (s *MinIOStore) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return data, nil
}

// DeleteSnapshot removes a stored frame.
func (s *MinIOStore) DeleteSnapshot(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// ListSnapshots returns every stored frame snapshot with its modification
// time.
func (s *MinIOStore) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	var snaps []SnapshotInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    snapshotPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list snapshots: %w", obj.Err)
		}
		snaps = append(snaps, SnapshotInfo{Key: obj.Key, LastModified: obj.LastModified})
	}
	return snaps, nil
}

// StaleSnapshots filters to the keys of snapshots last modified before
// cutoff. Newer snapshots may still be referenced by pending queue tasks.
func StaleSnapshots(snaps []SnapshotInfo, cutoff time.Time) []string {
	var keys []string
	for _, snap := range snaps {
		if snap.LastModified.Before(cutoff) {
			keys = append(keys, snap.Key)
		}
	}
	return keys
}

// Ping checks MinIO connectivity.
func (s *MinIOStore) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}
