package dashboard

import (
	"context"
	"errors"
	"time"

	"pet-adoption/internal/forms"
	"pet-adoption/internal/models"
	"pet-adoption/internal/platform/logger"
)

var (
	ErrNotFound       = errors.New("dashboard: item not found")
	ErrBadTransition  = errors.New("dashboard: status transition not allowed")
	ErrInvalidOutcome = errors.New("dashboard: decision must be approved or rejected")
	ErrInvalidStatus  = errors.New("dashboard: unknown pet status")
)

// PetSource carga la lista completa (GET /api/all-pets).
type PetSource interface {
	AllPets(ctx context.Context) ([]models.Pet, error)
}

// PetBackend confirma las mutaciones del dashboard de admin.
type PetBackend interface {
	CreatePet(ctx context.Context, d forms.PetDraft) (models.Pet, error)
	UpdatePet(ctx context.Context, id string, patch models.PetPatch) (models.Pet, error)
	DeletePet(ctx context.Context, id string) error
}

// PetBoard aplica cada mutación en local primero y la revierte si el backend
// falla. Sin backend, las mutaciones quedan solo en memoria.
type PetBoard struct {
	pets    *Collection[models.Pet]
	backend PetBackend
	log     logger.Logger
	now     func() time.Time
}

func NewPetBoard(pets []models.Pet, backend PetBackend, log logger.Logger) *PetBoard {
	if log == nil {
		log = logger.NewNop()
	}
	return &PetBoard{
		pets:    NewCollection(pets),
		backend: backend,
		log:     log,
		now:     time.Now,
	}
}

func (b *PetBoard) Pets() *Collection[models.Pet] { return b.pets }

// Load reemplaza la lista con la del servidor.
func (b *PetBoard) Load(ctx context.Context, src PetSource) error {
	pets, err := src.AllPets(ctx)
	if err != nil {
		return err
	}
	b.pets.Replace(pets)
	return nil
}

// View es la lista de admin ya filtrada.
func (b *PetBoard) View(f PetFilter) []models.Pet { return b.pets.Filter(f.Match) }

// Adoptable es la lista que ve un usuario.
func (b *PetBoard) Adoptable(f AdoptableFilter) []models.Pet { return b.pets.Filter(f.Match) }

// Add crea la mascota con id provisorio; si el backend confirma, el id y los
// datos del servidor reemplazan a los locales.
func (b *PetBoard) Add(ctx context.Context, d forms.PetDraft) (models.Pet, error) {
	local := b.pets.Add(d.NewPet("", b.now().Format(time.DateOnly)))
	if b.backend == nil {
		return local, nil
	}

	created, err := b.backend.CreatePet(ctx, d)
	if err != nil {
		b.pets.Remove(local.ID)
		b.log.Warn("create pet reverted", map[string]any{"pet_id": local.ID, "error": err})
		return models.Pet{}, err
	}
	if created.ID == "" {
		return local, nil
	}
	if !b.pets.Rekey(local.ID, created.ID) {
		// Ya estaba (p.ej. un Load concurrente la trajo): queda la del servidor.
		b.pets.Remove(local.ID)
	}
	b.pets.Update(created.ID, func(models.Pet) models.Pet { return created })
	return created, nil
}

// Update hace merge superficial del patch sobre la mascota id.
func (b *PetBoard) Update(ctx context.Context, id string, patch models.PetPatch) (models.Pet, error) {
	prev, ok := b.pets.Get(id)
	if !ok {
		return models.Pet{}, ErrNotFound
	}
	local, _ := b.pets.Update(id, patch.Apply)
	if b.backend == nil {
		return local, nil
	}

	saved, err := b.backend.UpdatePet(ctx, id, patch)
	if err != nil {
		b.pets.Update(id, func(models.Pet) models.Pet { return prev })
		b.log.Warn("update pet reverted", map[string]any{"pet_id": id, "error": err})
		return models.Pet{}, err
	}
	if saved.ID == "" {
		return local, nil
	}
	updated, _ := b.pets.Update(id, func(models.Pet) models.Pet { return saved })
	return updated, nil
}

// SetStatus cambia solo el estado de la mascota id (available, pending o
// adopted). Igual que Update, se aplica en local y se revierte si el backend
// falla.
func (b *PetBoard) SetStatus(ctx context.Context, id string, status models.PetStatus) (models.Pet, error) {
	if !status.Valid() {
		return models.Pet{}, ErrInvalidStatus
	}
	prev, ok := b.pets.Get(id)
	if !ok {
		return models.Pet{}, ErrNotFound
	}
	if prev.Status == status {
		return prev, nil
	}
	return b.Update(ctx, id, models.PetPatch{Status: &status})
}

// Remove borra la mascota id; si el backend falla vuelve a su posición.
func (b *PetBoard) Remove(ctx context.Context, id string) error {
	removed, at, ok := b.pets.Remove(id)
	if !ok {
		return ErrNotFound
	}
	if b.backend == nil {
		return nil
	}
	if err := b.backend.DeletePet(ctx, id); err != nil {
		b.pets.InsertAt(at, removed)
		b.log.Warn("delete pet reverted", map[string]any{"pet_id": id, "error": err})
		return err
	}
	return nil
}

type ApplicationBackend interface {
	ReviewApplication(ctx context.Context, id string, decision models.ApplicationStatus) (models.Application, error)
}

// ApplicationBoard es la cola de revisión de moderadores y admins.
type ApplicationBoard struct {
	apps    *Collection[models.Application]
	backend ApplicationBackend
	log     logger.Logger
}

func NewApplicationBoard(apps []models.Application, backend ApplicationBackend, log logger.Logger) *ApplicationBoard {
	if log == nil {
		log = logger.NewNop()
	}
	return &ApplicationBoard{apps: NewCollection(apps), backend: backend, log: log}
}

func (b *ApplicationBoard) Applications() *Collection[models.Application] { return b.apps }

func (b *ApplicationBoard) View(f ApplicationFilter) []models.Application {
	return b.apps.Filter(f.Match)
}

// Review aprueba o rechaza. Solo una solicitud pendiente puede decidirse;
// repetir la misma decisión no hace nada.
func (b *ApplicationBoard) Review(ctx context.Context, id string, decision models.ApplicationStatus) (models.Application, error) {
	if decision != models.ApplicationApproved && decision != models.ApplicationRejected {
		return models.Application{}, ErrInvalidOutcome
	}
	prev, ok := b.apps.Get(id)
	if !ok {
		return models.Application{}, ErrNotFound
	}
	if !prev.Status.CanBecome(decision) {
		return prev, ErrBadTransition
	}
	if prev.Status == decision {
		return prev, nil
	}

	local, _ := b.apps.Update(id, func(a models.Application) models.Application {
		a.Status = decision
		return a
	})
	if b.backend == nil {
		return local, nil
	}

	saved, err := b.backend.ReviewApplication(ctx, id, decision)
	if err != nil {
		b.apps.Update(id, func(models.Application) models.Application { return prev })
		b.log.Warn("review reverted", map[string]any{"application_id": id, "error": err})
		return models.Application{}, err
	}
	if saved.ID == "" {
		return local, nil
	}
	updated, _ := b.apps.Update(id, func(models.Application) models.Application { return saved })
	return updated, nil
}
