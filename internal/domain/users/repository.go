package users

import "context"

// Repository devuelve ErrConflict si el email ya existe y ErrNotFound si no hay usuario.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
