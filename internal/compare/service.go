package compare

import (
	"context"
	"log/slog"

	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/internal/observability"
	"github.com/your-org/sentinel/internal/vision"
)

// RosterSource supplies the reference records a probe is ranked against.
type RosterSource interface {
	List(ctx context.Context) ([]models.Soldier, error)
}

// Auditor records FACE_COMPARISON log entries best-effort.
type Auditor interface {
	Record(ctx context.Context, level models.LogLevel, tag, message string, fields map[string]any)
}

// Result is the outcome of one comparison. Matched false is an explicit
// no-match; collaborator failures are folded into it rather than surfaced as
// guesses.
type Result struct {
	Matched    bool   `json:"matched"`
	SoldierID  int64  `json:"soldier_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Candidates int    `json:"candidates"`
}

// Service runs probe images against the roster's embedded photos.
type Service struct {
	ranker vision.Ranker
	roster RosterSource
	audit  Auditor
}

func NewService(ranker vision.Ranker, roster RosterSource, audit Auditor) *Service {
	return &Service{ranker: ranker, roster: roster, audit: audit}
}

// CompareProbe ranks the probe against every roster record carrying an
// embedded image. source labels the origin (api client id or "compare-api")
// in the audit trail.
func (s *Service) CompareProbe(ctx context.Context, probe []byte, source string) (*Result, error) {
	soldiers, err := s.roster.List(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]vision.Candidate, 0, len(soldiers))
	for _, sol := range soldiers {
		if !sol.HasEmbeddedPhoto() {
			continue
		}
		candidates = append(candidates, vision.Candidate{
			RefID:     sol.ID,
			Name:      sol.Name,
			PhotoData: sol.PhotoData,
		})
	}

	res := &Result{Candidates: len(candidates)}
	if len(candidates) == 0 {
		observability.Comparisons.WithLabelValues("no_candidates").Inc()
		return res, nil
	}

	match, err := s.ranker.Rank(ctx, probe, candidates)
	if err != nil {
		// Collaborator failure is an explicit no-match, not a guess.
		observability.Comparisons.WithLabelValues("error").Inc()
		slog.Warn("face comparison failed", "source", source, "error", err)
		s.audit.Record(ctx, models.LevelWarn, models.TagFaceComparison, "comparison failed, treating as no match", map[string]any{
			"source": source, "error": err.Error(), "candidates": len(candidates),
		})
		return res, nil
	}

	if match == nil {
		observability.Comparisons.WithLabelValues("no_match").Inc()
		s.audit.Record(ctx, models.LevelInfo, models.TagFaceComparison, "no matching soldier", map[string]any{
			"source": source, "candidates": len(candidates),
		})
		return res, nil
	}

	res.Matched = true
	res.SoldierID = match.RefID
	res.Name = match.Name

	observability.Comparisons.WithLabelValues("match").Inc()
	s.audit.Record(ctx, models.LevelInfo, models.TagFaceComparison, "soldier matched", map[string]any{
		"source": source, "soldier_id": match.RefID, "name": match.Name, "candidates": len(candidates),
	})
	return res, nil
}
