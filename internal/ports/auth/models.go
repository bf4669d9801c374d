package auth

import "pet-adoption/internal/models"

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   models.Role
}

// HasRole indica si el rol de los claims está entre los permitidos.
func (c Claims) HasRole(roles ...models.Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
