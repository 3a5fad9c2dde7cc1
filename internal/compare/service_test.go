package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/internal/vision"
)

type fakeRoster struct {
	soldiers []models.Soldier
}

func (f *fakeRoster) List(ctx context.Context) ([]models.Soldier, error) {
	return f.soldiers, nil
}

type fakeRanker struct {
	match *vision.Match
	err   error
	calls int
}

func (f *fakeRanker) Rank(ctx context.Context, probe []byte, candidates []vision.Candidate) (*vision.Match, error) {
	f.calls++
	return f.match, f.err
}

type nopAuditor struct{}

func (nopAuditor) Record(ctx context.Context, level models.LogLevel, tag, message string, fields map[string]any) {
}

func rosterWithPhotos() *fakeRoster {
	return &fakeRoster{soldiers: []models.Soldier{
		{ID: 1, Name: "John Doe", PhotoData: "JD"},
		{ID: 2, Name: "Jane Smith", PhotoData: "data:image/jpeg;base64,aGVsbG8="},
	}}
}

func TestCompareProbe_Match(t *testing.T) {
	ranker := &fakeRanker{match: &vision.Match{Index: 0, RefID: 2, Name: "Jane Smith"}}
	svc := NewService(ranker, rosterWithPhotos(), nopAuditor{})

	res, err := svc.CompareProbe(context.Background(), []byte("jpeg"), "test")
	if err != nil {
		t.Fatalf("CompareProbe failed: %v", err)
	}
	if !res.Matched || res.SoldierID != 2 {
		t.Errorf("expected match on soldier 2, got %+v", res)
	}
	// Only the embedded-photo record is a candidate.
	if res.Candidates != 1 {
		t.Errorf("expected 1 candidate, got %d", res.Candidates)
	}
}

func TestCompareProbe_RankerFailureIsExplicitNoMatch(t *testing.T) {
	ranker := &fakeRanker{err: errors.New("endpoint down")}
	svc := NewService(ranker, rosterWithPhotos(), nopAuditor{})

	res, err := svc.CompareProbe(context.Background(), []byte("jpeg"), "test")
	if err != nil {
		t.Fatalf("collaborator failure must not surface as an error: %v", err)
	}
	if res.Matched {
		t.Error("collaborator failure must never produce a match")
	}
}

func TestCompareProbe_NoCandidates(t *testing.T) {
	ranker := &fakeRanker{}
	roster := &fakeRoster{soldiers: []models.Soldier{{ID: 1, Name: "John Doe", PhotoData: "JD"}}}
	svc := NewService(ranker, roster, nopAuditor{})

	res, err := svc.CompareProbe(context.Background(), []byte("jpeg"), "test")
	if err != nil {
		t.Fatalf("CompareProbe failed: %v", err)
	}
	if res.Matched || res.Candidates != 0 {
		t.Errorf("expected no-candidate result, got %+v", res)
	}
	if ranker.calls != 0 {
		t.Error("ranker must not be called without candidates")
	}
}
