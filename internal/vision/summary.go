package vision

import (
	"encoding/json"
	"fmt"

	"github.com/your-org/sentinel/internal/models"
)

// Summarize translates a received landmark frame into the log entry the
// operational log keeps for it: the kind, the point count, and the mean
// visibility when the detector reports one.
func Summarize(clientID string, frame models.LandmarkFrame) *models.LogEntry {
	tag := models.TagHandDetection
	if frame.Type == models.LandmarkPose {
		tag = models.TagFaceDetection
	}

	fields := map[string]any{
		"client_id": clientID,
		"kind":      string(frame.Type),
		"count":     len(frame.Landmarks),
	}
	if vis, ok := meanVisibility(frame.Landmarks); ok {
		fields["mean_visibility"] = vis
	}

	entry := &models.LogEntry{
		Level:     models.LevelInfo,
		Tag:       tag,
		Message:   fmt.Sprintf("%s landmarks detected (%d points)", frame.Type, len(frame.Landmarks)),
		CreatedBy: "system",
	}
	if data, err := json.Marshal(fields); err == nil {
		entry.Context = data
	}
	return entry
}

func meanVisibility(landmarks []models.Landmark) (float64, bool) {
	if len(landmarks) == 0 {
		return 0, false
	}
	var sum float64
	var n int
	for _, lm := range landmarks {
		if lm.Visibility > 0 {
			sum += lm.Visibility
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
