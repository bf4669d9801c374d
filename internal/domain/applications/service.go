package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/forms"
	"pet-adoption/internal/models"
	"pet-adoption/internal/platform/textclean"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrPetNotFound    = errors.New("pet not found")
	ErrPetUnavailable = errors.New("pet is not available for adoption")
	ErrBadState       = errors.New("invalid state")
)

type Service struct {
	repo Repository
	pets PetCatalog
	now  func() time.Time
}

func NewService(repo Repository, catalog PetCatalog) *Service {
	return &Service{
		repo: repo,
		pets: catalog,
		now:  time.Now,
	}
}

func (s *Service) Submit(ctx context.Context, userID string, in forms.ApplicationDraft) (Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Application{}, ErrInvalidInput
	}

	in = cleanDraft(in)
	if err := forms.ApplicationSchema.Check(in); err != nil {
		return Application{}, err
	}

	pet, err := s.pets.GetByID(ctx, in.PetID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Application{}, ErrPetNotFound
		}
		return Application{}, err
	}
	if pet.Status != models.PetAvailable {
		return Application{}, ErrPetUnavailable
	}

	// Idempotente: una sola solicitud pendiente por (usuario, mascota).
	mine, err := s.repo.ListByApplicant(ctx, userID)
	if err != nil {
		return Application{}, err
	}
	for _, a := range mine {
		if a.PetID == pet.ID && a.Status == models.ApplicationPending {
			return a, nil
		}
	}

	now := s.now()
	a := Application{
		ID:              uuid.NewString(),
		PetID:           pet.ID,
		PetName:         pet.Name,
		ApplicantUserID: userID,
		ApplicantName:   in.ApplicantName,
		Email:           strings.ToLower(in.Email),
		Phone:           in.Phone,
		Address:         in.Address,
		Experience:      in.Experience,
		Reason:          in.Reason,
		ApplicantImage:  AvatarPlaceholder,
		Status:          models.ApplicationPending,
		DateSubmitted:   now.Format(time.DateOnly),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

// Review aprueba o rechaza. Solo pending decide; repetir la misma decisión
// devuelve la solicitud sin cambios. Aprobar deja la mascota en pending.
func (s *Service) Review(ctx context.Context, id, reviewerID string, decision models.ApplicationStatus) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrInvalidInput
	}
	if decision != models.ApplicationApproved && decision != models.ApplicationRejected {
		return Application{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}

	// Idempotente
	if a.Status == decision {
		return a, nil
	}
	if !a.Status.CanBecome(decision) {
		return Application{}, ErrBadState
	}

	now := s.now()
	a.Status = decision
	a.ReviewedBy = strings.TrimSpace(reviewerID)
	a.UpdatedAt = now
	a.ReviewedAt = &now

	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}

	if decision == models.ApplicationApproved {
		if err := s.holdPet(ctx, a.PetID); err != nil {
			return a, err
		}
	}
	return a, nil
}

// holdPet pasa la mascota de available a pending. Si ya está pending o
// adopted no se toca; si se borró después de la solicitud, tampoco.
func (s *Service) holdPet(ctx context.Context, petID string) error {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load pet: %w", err)
	}
	if p.Status != models.PetAvailable {
		return nil
	}
	if _, err := s.pets.SetStatus(ctx, petID, models.PetPending); err != nil && !errors.Is(err, pets.ErrNotFound) {
		return fmt.Errorf("mark pet pending: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, status models.ApplicationStatus) ([]Application, error) {
	return s.repo.List(ctx, status)
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByApplicant(ctx, userID)
}

func cleanDraft(d forms.ApplicationDraft) forms.ApplicationDraft {
	d.PetID = strings.TrimSpace(d.PetID)
	d.ApplicantName = strings.TrimSpace(d.ApplicantName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	d.Experience = textclean.Plain(d.Experience)
	d.Reason = textclean.Plain(d.Reason)
	return d
}
