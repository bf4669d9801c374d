package users

import (
	"time"

	"pet-adoption/internal/models"
)

// User es la cuenta persistida. PasswordHash nunca sale por la API.
type User struct {
	ID string

	FirstName string
	LastName  string
	Email     string // único, en minúsculas
	Phone     string
	Address   string

	// Solo para admins.
	Department string
	EmployeeID string

	Role         models.Role
	PasswordHash []byte

	CreatedAt time.Time
}

// Public es la forma que ve el cliente.
func (u User) Public() models.User {
	return models.User{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.Phone,
		Address:     u.Address,
		Role:        u.Role,
	}
}
