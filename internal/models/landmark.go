package models

import (
	"time"

	"github.com/google/uuid"
)

type LandmarkKind string

const (
	LandmarkHand LandmarkKind = "hand"
	LandmarkPose LandmarkKind = "pose"
)

// Landmark is one normalized 2D/3D point produced by an external detector.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility,omitempty"`
}

// LandmarkFrame is the socket-channel message shape:
// {type: "hand"|"pose", landmarks: [{x,y,z,visibility}]}.
type LandmarkFrame struct {
	Type      LandmarkKind `json:"type"`
	Landmarks []Landmark   `json:"landmarks"`
}

// LandmarkBatch is the queue message wrapping a received landmark frame with
// its ingest provenance.
type LandmarkBatch struct {
	ClientID  string        `json:"client_id"`
	Timestamp time.Time     `json:"timestamp"`
	Frame     LandmarkFrame `json:"frame"`
}

// FrameTask is the queue message for one stored JPEG snapshot awaiting
// face comparison.
type FrameTask struct {
	FrameID     uuid.UUID `json:"frame_id"`
	ClientID    string    `json:"client_id"`
	Timestamp   time.Time `json:"timestamp"`
	SnapshotKey string    `json:"snapshot_key"`
}

// MatchEvent is the queue message carrying one comparison outcome back to
// the viewer-facing side. Matched false is an explicit no-match.
type MatchEvent struct {
	ClientID   string    `json:"client_id"`
	Timestamp  time.Time `json:"timestamp"`
	Matched    bool      `json:"matched"`
	SoldierID  int64     `json:"soldier_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	Candidates int       `json:"candidates"`
}
