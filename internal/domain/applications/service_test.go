package applications

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/forms"
	"pet-adoption/internal/forms/validate"
	"pet-adoption/internal/models"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Application
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Application{}}
}

func (r *testRepo) Create(ctx context.Context, a Application) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Application) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context, status models.ApplicationStatus) ([]Application, error) {
	out := make([]Application, 0)
	for _, a := range r.byID {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) ListByApplicant(ctx context.Context, userID string) ([]Application, error) {
	out := make([]Application, 0)
	for _, a := range r.byID {
		if a.ApplicantUserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// testCatalog cubre la parte de pets que usa el servicio.
type testCatalog struct {
	byID map[string]pets.Pet
}

func (c *testCatalog) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	p, ok := c.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (c *testCatalog) SetStatus(ctx context.Context, id string, status models.PetStatus) (pets.Pet, error) {
	p, ok := c.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	p.Status = status
	c.byID[id] = p
	return p, nil
}

func newTestService() (*Service, *testRepo, *testCatalog) {
	repo := newTestRepo()
	catalog := &testCatalog{byID: map[string]pets.Pet{
		"pet-1": {ID: "pet-1", Name: "Buddy", Status: models.PetAvailable},
		"pet-2": {ID: "pet-2", Name: "Whiskers", Status: models.PetAdopted},
	}}
	return NewService(repo, catalog), repo, catalog
}

func draftFor(petID string) forms.ApplicationDraft {
	return forms.ApplicationDraft{
		PetID:         petID,
		ApplicantName: "John Smith",
		Email:         "John@Example.com",
		Phone:         "555-123-4567",
		Address:       "1 Main St",
		Experience:    "Two dogs <script>alert(1)</script>growing up",
		Reason:        "Big yard",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Submit_DenormalisesPetName(t *testing.T) {
	svc, _, _ := newTestService()

	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a, err := svc.Submit(context.Background(), "user-1", draftFor("pet-1"))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if a.Status != models.ApplicationPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}
	if a.PetName != "Buddy" {
		t.Fatalf("expected petName Buddy, got %q", a.PetName)
	}
	if a.DateSubmitted != "2026-06-01" {
		t.Fatalf("expected dateSubmitted 2026-06-01, got %q", a.DateSubmitted)
	}
	if a.Email != "john@example.com" {
		t.Fatalf("expected lower-cased email, got %q", a.Email)
	}
	if a.Experience != "Two dogs growing up" {
		t.Fatalf("expected markup stripped, got %q", a.Experience)
	}
}

func TestService_Submit_Idempotent_WhilePending(t *testing.T) {
	svc, repo, _ := newTestService()

	a1, err := svc.Submit(context.Background(), "user-1", draftFor("pet-1"))
	if err != nil {
		t.Fatalf("Submit #1 error: %v", err)
	}
	a2, err := svc.Submit(context.Background(), "user-1", draftFor("pet-1"))
	if err != nil {
		t.Fatalf("Submit #2 error: %v", err)
	}
	if a1.ID != a2.ID || len(repo.byID) != 1 {
		t.Fatalf("expected one pending application, got %d", len(repo.byID))
	}
}

func TestService_Submit_Rejections(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "", draftFor("pet-1")); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without user, got %v", err)
	}
	if _, err := svc.Submit(ctx, "user-1", draftFor("nope")); err != ErrPetNotFound {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
	if _, err := svc.Submit(ctx, "user-1", draftFor("pet-2")); err != ErrPetUnavailable {
		t.Fatalf("expected ErrPetUnavailable, got %v", err)
	}

	d := draftFor("pet-1")
	d.Phone = "abc"
	_, err := svc.Submit(ctx, "user-1", d)
	var ve *validate.Error
	if !errors.As(err, &ve) || ve.Fields.Get(forms.FieldPhone) != validate.MsgPhone {
		t.Fatalf("expected phone validation error, got %v", err)
	}
}

func TestService_Review_ApproveMarksPetPending_AndIdempotent(t *testing.T) {
	svc, _, catalog := newTestService()
	ctx := context.Background()

	a, err := svc.Submit(ctx, "user-1", draftFor("pet-1"))
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	now := time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	approved, err := svc.Review(ctx, a.ID, "mod-1", models.ApplicationApproved)
	if err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if approved.Status != models.ApplicationApproved || approved.ReviewedBy != "mod-1" {
		t.Fatalf("unexpected review result %#v", approved)
	}
	if approved.ReviewedAt == nil || !approved.ReviewedAt.Equal(now) {
		t.Fatalf("expected ReviewedAt to be now")
	}
	if catalog.byID["pet-1"].Status != models.PetPending {
		t.Fatalf("expected pet pending after approval, got %s", catalog.byID["pet-1"].Status)
	}

	// idempotente
	again, err := svc.Review(ctx, a.ID, "mod-2", models.ApplicationApproved)
	if err != nil {
		t.Fatalf("Review #2 error: %v", err)
	}
	if again.ReviewedBy != "mod-1" {
		t.Fatalf("expected unchanged review, got reviewer %q", again.ReviewedBy)
	}

	// approved -> rejected no está permitido
	if _, err := svc.Review(ctx, a.ID, "mod-1", models.ApplicationRejected); err != ErrBadState {
		t.Fatalf("expected ErrBadState, got %v", err)
	}
}

func TestService_Review_RejectLeavesPetAvailable(t *testing.T) {
	svc, _, catalog := newTestService()
	ctx := context.Background()

	a, err := svc.Submit(ctx, "user-1", draftFor("pet-1"))
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if _, err := svc.Review(ctx, a.ID, "mod-1", models.ApplicationRejected); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if catalog.byID["pet-1"].Status != models.PetAvailable {
		t.Fatalf("expected pet to stay available")
	}

	if _, err := svc.Review(ctx, a.ID, "mod-1", models.ApplicationPending); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for pending decision, got %v", err)
	}
	if _, err := svc.Review(ctx, "missing", "mod-1", models.ApplicationApproved); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Review_ApproveKeepsAdoptedPet(t *testing.T) {
	svc, repo, catalog := newTestService()
	ctx := context.Background()

	a1, err := svc.Submit(ctx, "user-1", draftFor("pet-1"))
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	// Segunda solicitud pendiente cargada antes de que la mascota dejara de estar disponible.
	_ = repo.Create(ctx, Application{ID: "a2", PetID: "pet-1", ApplicantUserID: "user-2", Status: models.ApplicationPending})

	if _, err := svc.Review(ctx, a1.ID, "mod-1", models.ApplicationApproved); err != nil {
		t.Fatalf("Review a1 error: %v", err)
	}
	if _, err := catalog.SetStatus(ctx, "pet-1", models.PetAdopted); err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}

	if _, err := svc.Review(ctx, "a2", "mod-1", models.ApplicationApproved); err != nil {
		t.Fatalf("Review a2 error: %v", err)
	}
	if got := catalog.byID["pet-1"].Status; got != models.PetAdopted {
		t.Fatalf("expected adopted pet to stay adopted, got %s", got)
	}
}

func TestService_Review_ApproveWithDeletedPet(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_ = repo.Create(ctx, Application{ID: "orphan", PetID: "gone", ApplicantUserID: "user-1", Status: models.ApplicationPending})
	a, err := svc.Review(ctx, "orphan", "mod-1", models.ApplicationApproved)
	if err != nil || a.Status != models.ApplicationApproved {
		t.Fatalf("expected approval to succeed without the pet, got %v (%v)", a.Status, err)
	}
}

func TestService_List_FiltersByStatus(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	a, _ := svc.Submit(ctx, "user-1", draftFor("pet-1"))
	_, _ = svc.Review(ctx, a.ID, "mod-1", models.ApplicationRejected)

	_ = repo.Create(ctx, Application{ID: "seed", ApplicantUserID: "user-2", Status: models.ApplicationPending})

	all, _ := svc.List(ctx, "")
	pending, _ := svc.List(ctx, models.ApplicationPending)
	if len(all) != 2 || len(pending) != 1 || pending[0].ID != "seed" {
		t.Fatalf("unexpected filter result all=%d pending=%d", len(all), len(pending))
	}

	mine, err := svc.ListMine(ctx, "user-1")
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected one application for user-1, got %d (%v)", len(mine), err)
	}
}

func TestParseStatusFilter(t *testing.T) {
	for in, want := range map[string]models.ApplicationStatus{
		"": "", "all": "", "pending": models.ApplicationPending, "rejected": models.ApplicationRejected,
	} {
		got, ok := ParseStatusFilter(in)
		if !ok || got != want {
			t.Fatalf("ParseStatusFilter(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseStatusFilter("archived"); ok {
		t.Fatalf("expected unknown status to be rejected")
	}
}
