package pets

import (
	"time"

	"pet-adoption/internal/models"
)

// Pet es una mascota publicada por el refugio.
type Pet struct {
	ID string

	Name    string
	Species string // dog, cat, bird, ... (texto libre del formulario)
	Breed   string
	Age     string // "2 years", "6 months"
	Gender  string
	Size    string
	Color   string

	Description string
	Image       string // URL (S3 o externa), data URI o placeholder
	Location    string

	Status     models.PetStatus
	DateAdded  string // YYYY-MM-DD
	Vaccinated bool
	Spayed     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Model es la forma JSON que consume el cliente.
func (p Pet) Model() models.Pet {
	return models.Pet{
		ID:          p.ID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Age:         p.Age,
		Gender:      p.Gender,
		Size:        p.Size,
		Color:       p.Color,
		Description: p.Description,
		Image:       p.Image,
		Status:      p.Status,
		Location:    p.Location,
		DateAdded:   p.DateAdded,
		Vaccinated:  p.Vaccinated,
		Spayed:      p.Spayed,
	}
}

func fromModel(m models.Pet, createdAt, updatedAt time.Time) Pet {
	return Pet{
		ID:          m.ID,
		Name:        m.Name,
		Species:     m.Species,
		Breed:       m.Breed,
		Age:         m.Age,
		Gender:      m.Gender,
		Size:        m.Size,
		Color:       m.Color,
		Description: m.Description,
		Image:       m.Image,
		Location:    m.Location,
		Status:      m.Status,
		DateAdded:   m.DateAdded,
		Vaccinated:  m.Vaccinated,
		Spayed:      m.Spayed,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// ValidStatus indica si s es uno de los estados conocidos.
func ValidStatus(s models.PetStatus) bool { return s.Valid() }
