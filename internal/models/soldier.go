package models

import "time"

type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Soldier is one roster record. PhotoData holds either a two-character
// uppercase initials fallback or an embedded data:image/... string; it is
// never empty after creation and never a general URL.
type Soldier struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Position  string    `json:"position" db:"position"`
	Sex       Sex       `json:"sex" db:"sex"`
	Age       int       `json:"age" db:"age"`
	Status    Status    `json:"status" db:"status"`
	PhotoData string    `json:"photo_data" db:"photo_data"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasEmbeddedPhoto reports whether PhotoData carries an inline image rather
// than the initials fallback.
func (s *Soldier) HasEmbeddedPhoto() bool {
	return len(s.PhotoData) > 5 && s.PhotoData[:5] == "data:"
}
