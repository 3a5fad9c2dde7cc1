package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/your-org/sentinel/pkg/dto"
)

func recv(t *testing.T, ch chan []byte) *dto.WSEvent {
	t.Helper()
	select {
	case data := <-ch:
		var evt dto.WSEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			t.Fatalf("unmarshal broadcast: %v", err)
		}
		return &evt
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
		return nil
	}
}

func TestHub_BroadcastReachesViewer(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := &Client{send: make(chan []byte, 4)}
	hub.register <- client

	hub.BroadcastEvent(&dto.WSEvent{Type: "hand_detected", ClientID: "cam-1", Count: 21})

	evt := recv(t, client.send)
	if evt.Type != "hand_detected" {
		t.Errorf("type = %q, want hand_detected", evt.Type)
	}
	if evt.ClientID != "cam-1" {
		t.Errorf("client_id = %q, want cam-1", evt.ClientID)
	}
	if evt.Count != 21 {
		t.Errorf("count = %d, want 21", evt.Count)
	}
}

func TestHub_SourceFilterSkipsOtherClients(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := &Client{send: make(chan []byte, 4), clientID: "cam-2"}
	hub.register <- client

	// The filtered-out event must never arrive; the matching one sent after
	// it must be the first thing the viewer sees.
	hub.BroadcastEvent(&dto.WSEvent{Type: "pose_detected", ClientID: "cam-1"})
	hub.BroadcastEvent(&dto.WSEvent{Type: "pose_detected", ClientID: "cam-2"})

	evt := recv(t, client.send)
	if evt.ClientID != "cam-2" {
		t.Errorf("client_id = %q, want cam-2", evt.ClientID)
	}
}

func TestHub_SlowViewerDropped(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := &Client{send: make(chan []byte)} // unbuffered, nothing reading
	hub.register <- client

	hub.BroadcastEvent(&dto.WSEvent{Type: "hand_detected", ClientID: "cam-1"})

	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.RLock()
		_, registered := hub.clients[client]
		hub.mu.RUnlock()
		if !registered {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("slow viewer was not dropped")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
