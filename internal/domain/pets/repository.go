package pets

import "context"

// Repository devuelve ErrNotFound cuando el id no existe.
// List devuelve en orden de alta.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
}

// ImageStore sube una foto en data URI y devuelve su URL pública.
type ImageStore interface {
	Put(ctx context.Context, key, dataURI string) (string, error)
}
