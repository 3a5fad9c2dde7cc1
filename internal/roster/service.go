package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/internal/observability"
)

// ErrValidation marks caller-boundary rejections; handlers map it to 400.
var ErrValidation = errors.New("invalid soldier record")

// Store is the roster persistence contract.
type Store interface {
	ListSoldiers(ctx context.Context) ([]models.Soldier, error)
	CreateSoldier(ctx context.Context, s *models.Soldier) error
	UpdateSoldier(ctx context.Context, s *models.Soldier) error
	DeleteSoldier(ctx context.Context, id int64) error
}

// Auditor records operational log entries for roster mutations. Best-effort:
// implementations must never fail the caller.
type Auditor interface {
	Record(ctx context.Context, level models.LogLevel, tag, message string, fields map[string]any)
}

// Input is a create/update request at the caller boundary. PhotoData is an
// optional embedded image; when absent the initials fallback applies.
type Input struct {
	Name      string
	Position  string
	Sex       string
	Age       int
	Status    string
	PhotoData string
}

type Service struct {
	store Store
	audit Auditor
}

func NewService(store Store, audit Auditor) *Service {
	return &Service{store: store, audit: audit}
}

// validate applies the soft validation of the admin boundary: presence of
// name/position, age bounds, enum membership. Status defaults to Active.
func validate(in *Input) (*models.Soldier, error) {
	name := cleanName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(in.Position) == "" {
		return nil, fmt.Errorf("%w: position is required", ErrValidation)
	}
	if in.Age <= 0 || in.Age >= 120 {
		return nil, fmt.Errorf("%w: age must be between 1 and 119", ErrValidation)
	}

	sex := models.Sex(in.Sex)
	if sex != models.SexMale && sex != models.SexFemale {
		return nil, fmt.Errorf("%w: sex must be Male or Female", ErrValidation)
	}

	status := models.Status(in.Status)
	if status == "" {
		status = models.StatusActive
	}
	if status != models.StatusActive && status != models.StatusInactive {
		return nil, fmt.Errorf("%w: status must be Active or Inactive", ErrValidation)
	}

	photo, err := NormalizePhoto(name, in.PhotoData)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	return &models.Soldier{
		Name:      name,
		Position:  strings.TrimSpace(in.Position),
		Sex:       sex,
		Age:       in.Age,
		Status:    status,
		PhotoData: photo,
	}, nil
}

// List returns all records, newest first.
func (s *Service) List(ctx context.Context) ([]models.Soldier, error) {
	return s.store.ListSoldiers(ctx)
}

// Create validates and stores a new record, returning it with the generated
// id and timestamps.
func (s *Service) Create(ctx context.Context, in Input) (*models.Soldier, error) {
	sol, err := validate(&in)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateSoldier(ctx, sol); err != nil {
		s.audit.Record(ctx, models.LevelError, models.TagSoldierMgmt, "failed to create soldier", map[string]any{
			"name": sol.Name, "error": err.Error(),
		})
		return nil, err
	}

	observability.RosterMutations.WithLabelValues("create").Inc()
	s.audit.Record(ctx, models.LevelInfo, models.TagSoldierMgmt, "soldier created", map[string]any{
		"soldier_id": sol.ID, "name": sol.Name,
	})
	return sol, nil
}

// Update applies the same validation and photo fallback, then rewrites the
// record. The id and created_at are preserved by the store; updated_at
// advances.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*models.Soldier, error) {
	sol, err := validate(&in)
	if err != nil {
		return nil, err
	}
	sol.ID = id

	if err := s.store.UpdateSoldier(ctx, sol); err != nil {
		s.audit.Record(ctx, models.LevelError, models.TagSoldierMgmt, "failed to update soldier", map[string]any{
			"soldier_id": id, "error": err.Error(),
		})
		return nil, err
	}

	observability.RosterMutations.WithLabelValues("update").Inc()
	s.audit.Record(ctx, models.LevelInfo, models.TagSoldierMgmt, "soldier updated", map[string]any{
		"soldier_id": sol.ID, "name": sol.Name,
	})
	return sol, nil
}

// Delete removes a record. A missing id surfaces as an error; it is not
// retried.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteSoldier(ctx, id); err != nil {
		s.audit.Record(ctx, models.LevelError, models.TagSoldierMgmt, "failed to delete soldier", map[string]any{
			"soldier_id": id, "error": err.Error(),
		})
		return err
	}

	observability.RosterMutations.WithLabelValues("delete").Inc()
	s.audit.Record(ctx, models.LevelInfo, models.TagSoldierMgmt, "soldier deleted", map[string]any{
		"soldier_id": id,
	})
	return nil
}
