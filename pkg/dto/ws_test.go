package dto

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestWSEvent_WireShape(t *testing.T) {
	evt := WSEvent{
		Type:      "hand_detected",
		ClientID:  "cam-1",
		Timestamp: "2026-08-29T12:00:00Z",
		Count:     1,
		Kind:      "hand",
		Landmarks: []Landmark{{X: 0.1, Y: 0.2, Z: 0.3, Visibility: 0.9}},
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, field := range []string{`"type"`, `"client_id"`, `"kind"`, `"landmarks"`, `"visibility"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("wire form missing %s: %s", field, data)
		}
	}
	// Match fields stay off the wire for detection events.
	if strings.Contains(string(data), "soldier_id") {
		t.Errorf("empty soldier_id should be omitted: %s", data)
	}
}
