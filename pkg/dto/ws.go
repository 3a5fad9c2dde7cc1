package dto

// Landmark is one normalized detection point as it travels to viewers.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility,omitempty"`
}

// WSEvent is a WebSocket message for real-time viewer delivery.
type WSEvent struct {
	Type      string     `json:"type"` // hand_detected, pose_detected, soldier_matched, no_match
	ClientID  string     `json:"client_id"`
	Timestamp string     `json:"timestamp"`
	Count     int        `json:"count,omitempty"`
	Kind      string     `json:"kind,omitempty"` // hand or pose
	Landmarks []Landmark `json:"landmarks,omitempty"`
	SoldierID int64      `json:"soldier_id,omitempty"`
	Name      string     `json:"name,omitempty"`
}
