package roster

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/your-org/sentinel/internal/models"
	"github.com/your-org/sentinel/internal/storage"
)

// memStore is an in-memory roster store for exercising the service contract.
type memStore struct {
	nextID   int64
	soldiers []models.Soldier
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (m *memStore) ListSoldiers(ctx context.Context) ([]models.Soldier, error) {
	out := make([]models.Soldier, len(m.soldiers))
	copy(out, m.soldiers)
	return out, nil
}

func (m *memStore) CreateSoldier(ctx context.Context, s *models.Soldier) error {
	s.ID = m.nextID
	m.nextID++
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	m.soldiers = append([]models.Soldier{*s}, m.soldiers...)
	return nil
}

func (m *memStore) UpdateSoldier(ctx context.Context, s *models.Soldier) error {
	for i := range m.soldiers {
		if m.soldiers[i].ID == s.ID {
			s.CreatedAt = m.soldiers[i].CreatedAt
			s.UpdatedAt = m.soldiers[i].UpdatedAt.Add(time.Millisecond)
			m.soldiers[i] = *s
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) DeleteSoldier(ctx context.Context, id int64) error {
	for i := range m.soldiers {
		if m.soldiers[i].ID == id {
			m.soldiers = append(m.soldiers[:i], m.soldiers[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

type nopAuditor struct{}

func (nopAuditor) Record(ctx context.Context, level models.LogLevel, tag, message string, fields map[string]any) {
}

func validInput() Input {
	return Input{Name: "John Doe", Position: "Sniper", Sex: "Male", Age: 30}
}

func TestCreate_AgeBounds(t *testing.T) {
	svc := NewService(newMemStore(), nopAuditor{})
	ctx := context.Background()

	for _, age := range []int{1, 50, 119} {
		in := validInput()
		in.Age = age
		if _, err := svc.Create(ctx, in); err != nil {
			t.Errorf("age %d should be accepted, got %v", age, err)
		}
	}

	for _, age := range []int{-5, 0, 120, 200} {
		in := validInput()
		in.Age = age
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrValidation) {
			t.Errorf("age %d should be rejected, got %v", age, err)
		}
	}
}

func TestCreate_RequiredFields(t *testing.T) {
	svc := NewService(newMemStore(), nopAuditor{})
	ctx := context.Background()

	in := validInput()
	in.Name = "   "
	if _, err := svc.Create(ctx, in); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name should be rejected, got %v", err)
	}

	in = validInput()
	in.Position = ""
	if _, err := svc.Create(ctx, in); !errors.Is(err, ErrValidation) {
		t.Errorf("blank position should be rejected, got %v", err)
	}

	in = validInput()
	in.Sex = "Other"
	if _, err := svc.Create(ctx, in); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown sex should be rejected, got %v", err)
	}
}

func TestCreate_DefaultsAndFallback(t *testing.T) {
	svc := NewService(newMemStore(), nopAuditor{})

	sol, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if sol.ID == 0 {
		t.Error("expected generated id")
	}
	if sol.Status != models.StatusActive {
		t.Errorf("expected default status Active, got %q", sol.Status)
	}
	if sol.PhotoData != "JD" {
		t.Errorf("expected initials fallback JD, got %q", sol.PhotoData)
	}
}

func TestCreate_ThenListReturnsStableRecord(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nopAuditor{})
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	soldiers, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(soldiers) != 1 {
		t.Fatalf("expected 1 soldier, got %d", len(soldiers))
	}
	if soldiers[0].ID != created.ID {
		t.Errorf("id changed between create and list: %d vs %d", created.ID, soldiers[0].ID)
	}
	if soldiers[0].PhotoData == "" {
		t.Error("photo_data must never be empty")
	}
}

func TestUpdate_PreservesIdentityAdvancesUpdatedAt(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nopAuditor{})
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	in := validInput()
	in.Position = "Scout"
	updated, err := svc.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("update changed id: %d vs %d", created.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update changed created_at")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("update did not advance updated_at")
	}
	if updated.Position != "Scout" {
		t.Errorf("expected updated position, got %q", updated.Position)
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	svc := NewService(newMemStore(), nopAuditor{})

	_, err := svc.Update(context.Background(), 42, validInput())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_RemovesFromList(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nopAuditor{})
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	soldiers, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, s := range soldiers {
		if s.ID == created.ID {
			t.Errorf("deleted id %d still listed", created.ID)
		}
	}

	// Deleting again surfaces the failure, it is not retried or masked.
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCreate_OversizedPhotoRejectedBeforeStore(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nopAuditor{})

	in := validInput()
	in.PhotoData = "data:image/jpeg;base64," + strings.Repeat("A", MaxEncodedPhotoBytes)

	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation rejection, got %v", err)
	}
	if len(store.soldiers) != 0 {
		t.Error("oversized photo reached the store")
	}
}
