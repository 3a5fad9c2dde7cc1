package vision

import (
	"encoding/json"
	"testing"

	"github.com/your-org/sentinel/internal/models"
)

func TestSummarize_Hand(t *testing.T) {
	frame := models.LandmarkFrame{
		Type: models.LandmarkHand,
		Landmarks: []models.Landmark{
			{X: 0.1, Y: 0.2, Z: 0.0},
			{X: 0.3, Y: 0.4, Z: 0.1},
		},
	}

	entry := Summarize("cam-1", frame)

	if entry.Tag != models.TagHandDetection {
		t.Errorf("expected HAND_DETECTION tag, got %q", entry.Tag)
	}
	if entry.Level != models.LevelInfo {
		t.Errorf("expected INFO level, got %q", entry.Level)
	}

	var fields map[string]any
	if err := json.Unmarshal(entry.Context, &fields); err != nil {
		t.Fatalf("context not valid JSON: %v", err)
	}
	if fields["count"] != float64(2) {
		t.Errorf("expected count 2, got %v", fields["count"])
	}
	if fields["client_id"] != "cam-1" {
		t.Errorf("expected client_id cam-1, got %v", fields["client_id"])
	}
	if _, ok := fields["mean_visibility"]; ok {
		t.Error("no visibility reported, mean_visibility should be absent")
	}
}

func TestSummarize_PoseWithVisibility(t *testing.T) {
	frame := models.LandmarkFrame{
		Type: models.LandmarkPose,
		Landmarks: []models.Landmark{
			{X: 0.1, Y: 0.2, Visibility: 0.8},
			{X: 0.3, Y: 0.4, Visibility: 0.6},
			{X: 0.5, Y: 0.6}, // not reported, excluded from the mean
		},
	}

	entry := Summarize("cam-2", frame)

	if entry.Tag != models.TagFaceDetection {
		t.Errorf("expected FACE_DETECTION tag, got %q", entry.Tag)
	}

	var fields map[string]any
	if err := json.Unmarshal(entry.Context, &fields); err != nil {
		t.Fatalf("context not valid JSON: %v", err)
	}
	vis, ok := fields["mean_visibility"].(float64)
	if !ok {
		t.Fatal("expected mean_visibility field")
	}
	if vis < 0.699 || vis > 0.701 {
		t.Errorf("expected mean visibility 0.7, got %v", vis)
	}
}

func TestSummarize_EmptyFrame(t *testing.T) {
	entry := Summarize("cam-3", models.LandmarkFrame{Type: models.LandmarkHand})
	var fields map[string]any
	if err := json.Unmarshal(entry.Context, &fields); err != nil {
		t.Fatalf("context not valid JSON: %v", err)
	}
	if fields["count"] != float64(0) {
		t.Errorf("expected count 0, got %v", fields["count"])
	}
}
