package applications

import (
	"time"

	"pet-adoption/internal/models"
)

// AvatarPlaceholder se usa mientras el solicitante no tenga foto.
const AvatarPlaceholder = "/placeholder.svg?height=40&width=40"

// Application es una solicitud de adopción.
type Application struct {
	ID string

	PetID   string
	PetName string // copiado de la mascota al enviar

	ApplicantUserID string // quien envía (puede diferir del email de contacto)
	ApplicantName   string
	Email           string
	Phone           string
	Address         string
	Experience      string
	Reason          string
	ApplicantImage  string

	Status        models.ApplicationStatus
	DateSubmitted string // YYYY-MM-DD

	ReviewedBy string // moderador/admin que decidió

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReviewedAt *time.Time
}

func (a Application) Model() models.Application {
	return models.Application{
		ID:             a.ID,
		PetID:          a.PetID,
		PetName:        a.PetName,
		ApplicantName:  a.ApplicantName,
		Email:          a.Email,
		Phone:          a.Phone,
		Address:        a.Address,
		Experience:     a.Experience,
		Reason:         a.Reason,
		Status:         a.Status,
		DateSubmitted:  a.DateSubmitted,
		ApplicantImage: a.ApplicantImage,
	}
}

// ParseStatusFilter: "" o "all" = sin filtro.
func ParseStatusFilter(s string) (models.ApplicationStatus, bool) {
	switch models.ApplicationStatus(s) {
	case "", "all":
		return "", true
	case models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected:
		return models.ApplicationStatus(s), true
	}
	return "", false
}
