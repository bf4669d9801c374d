package modals

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption/internal/dashboard"
	"pet-adoption/internal/forms"
	"pet-adoption/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lunaBoard() *dashboard.PetBoard {
	return dashboard.NewPetBoard([]models.Pet{
		{ID: "1", Name: "Luna", Species: "Cat", Breed: "Siamese", Age: "Adult", Gender: "Female",
			Size: "Small", Location: "Main", Status: models.PetAvailable, DateAdded: "2026-01-02"},
		{ID: "2", Name: "Max", Species: "Dog", Status: models.PetPending},
	}, nil, nil)
}

func TestDeletePet_LunaExample(t *testing.T) {
	board := lunaBoard()
	m := NewDeletePet(board)
	luna, _ := board.Pets().Get("1")

	m.Open(luna)
	m.SetConfirmation("luna")
	assert.False(t, m.CanConfirm())
	assert.ErrorIs(t, m.Confirm(context.Background()), ErrNotConfirmed)
	assert.Equal(t, 2, board.Pets().Len())

	for _, text := range []string{"", "Luna ", "LUNA", "Lun"} {
		m.SetConfirmation(text)
		assert.Falsef(t, m.CanConfirm(), "confirmation %q must stay blocked", text)
	}

	m.SetConfirmation("Luna")
	assert.True(t, m.CanConfirm())
	require.NoError(t, m.Confirm(context.Background()))

	_, ok := board.Pets().Get("1")
	assert.False(t, ok)
	assert.Equal(t, Closed, m.State())
	assert.Equal(t, Committed, m.Outcome())
}

func TestDeletePet_BoundToIDNotName(t *testing.T) {
	board := dashboard.NewPetBoard([]models.Pet{
		{ID: "a", Name: "Luna"},
		{ID: "b", Name: "Luna"},
	}, nil, nil)
	m := NewDeletePet(board)

	target, _ := board.Pets().Get("b")
	m.Open(target)
	m.SetConfirmation("Luna")
	require.NoError(t, m.Confirm(context.Background()))

	_, okA := board.Pets().Get("a")
	_, okB := board.Pets().Get("b")
	assert.True(t, okA)
	assert.False(t, okB)
}

func TestAddPet_RequiredFieldsThenCommit(t *testing.T) {
	board := lunaBoard()
	m := NewAddPet(board)

	_, err := m.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotOpen)

	m.Open()
	m.Edit(func(d *forms.PetDraft) { d.Name = "Nube" })
	_, err = m.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, "Species is required", m.Errors().Get(forms.FieldSpecies))
	assert.Equal(t, Open, m.State())
	assert.Equal(t, 2, board.Pets().Len())

	m.Edit(func(d *forms.PetDraft) {
		d.Species, d.Breed, d.Age, d.Gender, d.Size, d.Location = "Cat", "Persian", "Young", "Male", "Medium", "North"
	})
	p, err := m.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PetAvailable, p.Status)
	assert.Equal(t, forms.PlaceholderImage, p.Image)
	assert.Equal(t, p.ID, board.Pets().Items()[0].ID)
	assert.Equal(t, Committed, m.Outcome())

	// Reabrir arranca vacío.
	m.Open()
	assert.Equal(t, forms.PetDraft{}, m.Draft())
}

func TestEditPet_ReseedsOnOpenAndPatchesEditableFields(t *testing.T) {
	board := lunaBoard()
	m := NewEditPet(board)
	luna, _ := board.Pets().Get("1")

	m.Open(luna)
	m.Edit(func(d *forms.PetDraft) { d.Name = "stale edit" })
	m.Close()
	assert.Equal(t, Cancelled, m.Outcome())

	m.Open(luna)
	assert.Equal(t, "Luna", m.Draft().Name)

	m.Edit(func(d *forms.PetDraft) { d.Location = "Shelter B" })
	p, err := m.Submit(context.Background())
	require.NoError(t, err)

	want := luna
	want.Location = "Shelter B"
	assert.Equal(t, want, p)
	other, _ := board.Pets().Get("2")
	assert.Equal(t, "Max", other.Name)
}

func TestCloseDuringLatencyDiscardsResult(t *testing.T) {
	board := lunaBoard()
	m := NewDeletePet(board, WithLatency(50*time.Millisecond))
	luna, _ := board.Pets().Get("1")
	m.Open(luna)
	m.SetConfirmation("Luna")

	done := make(chan error, 1)
	go func() { done <- m.Confirm(context.Background()) }()

	require.Eventually(t, func() bool { return m.State() == Submitting }, time.Second, time.Millisecond)
	m.Close()

	err := <-done
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 2, board.Pets().Len())
	assert.Equal(t, Cancelled, m.Outcome())
}

func TestContextCancelReturnsToOpen(t *testing.T) {
	board := lunaBoard()
	m := NewAddPet(board, WithLatency(time.Hour))
	m.Open()
	m.Edit(func(d *forms.PetDraft) {
		*d = forms.PetDraft{Name: "N", Species: "Cat", Breed: "B", Age: "A", Gender: "G", Size: "S", Location: "L"}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Submit(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, Open, m.State())
	assert.NotEmpty(t, m.Errors().Get(FormField))
	assert.Equal(t, 2, board.Pets().Len())
}

type failingBackend struct{ err error }

func (f failingBackend) CreatePet(context.Context, forms.PetDraft) (models.Pet, error) {
	return models.Pet{}, f.err
}

func (f failingBackend) UpdatePet(context.Context, string, models.PetPatch) (models.Pet, error) {
	return models.Pet{}, f.err
}

func (f failingBackend) DeletePet(context.Context, string) error { return f.err }

func TestBackendFailureKeepsModalOpenAndListIntact(t *testing.T) {
	board := dashboard.NewPetBoard([]models.Pet{{ID: "1", Name: "Luna"}}, failingBackend{err: errors.New("down")}, nil)
	m := NewDeletePet(board)
	luna, _ := board.Pets().Get("1")
	m.Open(luna)
	m.SetConfirmation("Luna")

	require.Error(t, m.Confirm(context.Background()))
	assert.Equal(t, Open, m.State())
	assert.Equal(t, 1, board.Pets().Len())
	assert.NotEmpty(t, m.Errors().Get(FormField))
}

// slowBackend deja el alta colgada hasta que se cierre release.
type slowBackend struct {
	failingBackend
	entered chan struct{}
	release chan struct{}
}

func (s slowBackend) CreatePet(_ context.Context, d forms.PetDraft) (models.Pet, error) {
	close(s.entered)
	<-s.release
	return models.Pet{ID: "srv-1", Name: d.Name, Status: models.PetAvailable}, nil
}

func TestCloseWhileSavingKeepsTheChange(t *testing.T) {
	be := slowBackend{entered: make(chan struct{}), release: make(chan struct{})}
	board := dashboard.NewPetBoard(nil, be, nil)
	m := NewAddPet(board)
	m.Open()
	m.Edit(func(d *forms.PetDraft) {
		*d = forms.PetDraft{Name: "Nube", Species: "Cat", Breed: "B", Age: "A", Gender: "G", Size: "S", Location: "L"}
	})

	type result struct {
		pet models.Pet
		err error
	}
	done := make(chan result, 1)
	go func() {
		p, err := m.Submit(context.Background())
		done <- result{p, err}
	}()

	<-be.entered
	m.Close()
	close(be.release)

	res := <-done
	assert.ErrorIs(t, res.err, ErrSavedAfterClose)
	assert.ErrorIs(t, res.err, ErrClosed)
	assert.Equal(t, "srv-1", res.pet.ID)
	_, ok := board.Pets().Get("srv-1")
	assert.True(t, ok)
	assert.Equal(t, Cancelled, m.Outcome())
}
