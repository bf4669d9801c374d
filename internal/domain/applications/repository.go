package applications

import (
	"context"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/models"
)

// Repository devuelve ErrNotFound cuando el id no existe. Los listados
// vienen del más nuevo al más viejo.
type Repository interface {
	Create(ctx context.Context, a Application) error
	Update(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	// List con status "" devuelve todas.
	List(ctx context.Context, status models.ApplicationStatus) ([]Application, error)
	ListByApplicant(ctx context.Context, userID string) ([]Application, error)
}

// PetCatalog es lo que applications necesita de pets (lo implementa *pets.Service).
type PetCatalog interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	SetStatus(ctx context.Context, id string, status models.PetStatus) (pets.Pet, error)
}
