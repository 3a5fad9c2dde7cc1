// Package vision defines the external capability boundaries of the system.
// Detection and comparison are owned by external collaborators; the host
// depends only on these interfaces, never on a vendor SDK or endpoint shape.
package vision

import (
	"context"

	"github.com/your-org/sentinel/internal/models"
)

// Detector extracts landmark sets from a single frame. The production
// deployment receives landmarks pushed by external detector clients over the
// socket channel, so no local Detector implementation ships here; the
// interface exists so one can be plugged in without touching the host.
type Detector interface {
	Detect(ctx context.Context, frame []byte) ([]models.LandmarkFrame, error)
}

// Candidate is one reference image offered to a Ranker.
type Candidate struct {
	// RefID identifies the owning record (the soldier id).
	RefID int64
	// Name is a human-readable label, used in audit entries only.
	Name string
	// PhotoData is an embedded data:image/... string.
	PhotoData string
}

// Match is a ranking outcome. A nil Match from Ranker.Rank means an explicit
// no-match; failures are never turned into guesses.
type Match struct {
	// Index into the candidate slice that was ranked.
	Index int
	RefID int64
	Name  string
}

// Ranker ranks reference images against a probe image and returns the best
// match, or nil when no candidate matches or the collaborator fails.
type Ranker interface {
	Rank(ctx context.Context, probe []byte, candidates []Candidate) (*Match, error)
}
