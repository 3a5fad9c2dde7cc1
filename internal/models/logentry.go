package models

import (
	"encoding/json"
	"time"
)

type LogLevel string

const (
	LevelError LogLevel = "ERROR"
	LevelWarn  LogLevel = "WARN"
	LevelInfo  LogLevel = "INFO"
	LevelDebug LogLevel = "DEBUG"
)

// ParseLogLevel maps free text onto a known level, defaulting to INFO.
func ParseLogLevel(s string) LogLevel {
	switch LogLevel(s) {
	case LevelError, LevelWarn, LevelInfo, LevelDebug:
		return LogLevel(s)
	default:
		return LevelInfo
	}
}

// Conventional tag values. Tags are free text; these are the ones the
// application itself writes.
const (
	TagCamera         = "CAMERA"
	TagHandDetection  = "HAND_DETECTION"
	TagFaceDetection  = "FACE_DETECTION"
	TagFaceComparison = "FACE_COMPARISON"
	TagSoldierMgmt    = "SOLDIER_MGMT"
	TagSystem         = "SYSTEM"
)

// LogEntry is one row of the append-only system log. The only supported bulk
// mutation is delete-all.
type LogEntry struct {
	ID        int64           `json:"id" db:"id"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	Level     LogLevel        `json:"level" db:"level"`
	Tag       string          `json:"tag,omitempty" db:"tag"`
	Message   string          `json:"message" db:"message"`
	Context   json.RawMessage `json:"context,omitempty" db:"context"`
	CreatedBy string          `json:"created_by" db:"created_by"`
}
