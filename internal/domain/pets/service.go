package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/forms"
	"pet-adoption/internal/models"
	"pet-adoption/internal/platform/textclean"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo   Repository
	images ImageStore // nil = la imagen se guarda tal como llega
	now    func() time.Time
}

func NewService(repo Repository, images ImageStore) *Service {
	return &Service{
		repo:   repo,
		images: images,
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in forms.PetDraft) (Pet, error) {
	in = trimDraft(in)
	if err := forms.PetSchema.Check(in); err != nil {
		return Pet{}, err
	}

	now := s.now()
	id := uuid.NewString()
	m := in.NewPet(id, now.Format(time.DateOnly))

	img, err := s.storeImage(ctx, id, m.Image)
	if err != nil {
		return Pet{}, err
	}
	m.Image = img

	p := fromModel(m, now, now)
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Update aplica un merge superficial; id y dateAdded no se tocan.
func (s *Service) Update(ctx context.Context, id string, patch models.PetPatch) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return Pet{}, ErrInvalidInput
	}

	merged := patch.Apply(current.Model())
	draft := trimDraft(forms.PetDraftFrom(merged))
	if err := forms.PetSchema.Check(draft); err != nil {
		return Pet{}, err
	}

	if patch.Image != nil {
		img, err := s.storeImage(ctx, current.ID, draft.Image)
		if err != nil {
			return Pet{}, err
		}
		draft.Image = img
	}

	next := fromModel(draft.NewPet(current.ID, current.DateAdded), current.CreatedAt, s.now())
	next.Status = merged.Status

	if err := s.repo.Update(ctx, next); err != nil {
		return Pet{}, err
	}
	return next, nil
}

// SetStatus lo usan otros módulos (applications) sin pasar por el patch completo.
func (s *Service) SetStatus(ctx context.Context, id string, status models.PetStatus) (Pet, error) {
	if !ValidStatus(status) {
		return Pet{}, ErrInvalidInput
	}
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.Status == status {
		return p, nil
	}
	p.Status = status
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) storeImage(ctx context.Context, id, img string) (string, error) {
	if s.images == nil || !strings.HasPrefix(img, "data:") {
		return img, nil
	}
	url, err := s.images.Put(ctx, id, img)
	if err != nil {
		return "", fmt.Errorf("store pet image: %w", err)
	}
	return url, nil
}

func trimDraft(d forms.PetDraft) forms.PetDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Species = strings.TrimSpace(d.Species)
	d.Breed = strings.TrimSpace(d.Breed)
	d.Age = strings.TrimSpace(d.Age)
	d.Gender = strings.TrimSpace(d.Gender)
	d.Size = strings.TrimSpace(d.Size)
	d.Color = strings.TrimSpace(d.Color)
	d.Location = strings.TrimSpace(d.Location)
	d.Image = strings.TrimSpace(d.Image)
	d.Description = textclean.Plain(d.Description)
	return d
}
