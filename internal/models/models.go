// Package models contiene las formas JSON que viajan entre la API y el
// cliente (dashboards, modales, CLI).
package models

import "strings"

type PetStatus string

const (
	PetAvailable PetStatus = "available"
	PetPending   PetStatus = "pending"
	PetAdopted   PetStatus = "adopted"
)

// Valid indica si s es uno de los estados conocidos.
func (s PetStatus) Valid() bool {
	switch s {
	case PetAvailable, PetPending, PetAdopted:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// CanBecome: solo pending decide; repetir la misma decisión es un no-op.
func (s ApplicationStatus) CanBecome(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	return s == ApplicationPending && (next == ApplicationApproved || next == ApplicationRejected)
}

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole normaliza; roles desconocidos caen en user.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleModerator:
		return RoleModerator
	default:
		return RoleUser
	}
}

type Pet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed"`
	Age         string    `json:"age"`
	Gender      string    `json:"gender"`
	Size        string    `json:"size"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Status      PetStatus `json:"status"`
	Location    string    `json:"location"`
	DateAdded   string    `json:"dateAdded"` // YYYY-MM-DD
	Vaccinated  bool      `json:"vaccinated"`
	Spayed      bool      `json:"spayed"`
}

func (p Pet) Key() string { return p.ID }

func (p Pet) WithKey(id string) Pet {
	p.ID = id
	return p
}

// PetPatch es un merge superficial: nil = no tocar.
type PetPatch struct {
	Name        *string    `json:"name,omitempty"`
	Species     *string    `json:"species,omitempty"`
	Breed       *string    `json:"breed,omitempty"`
	Age         *string    `json:"age,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	Size        *string    `json:"size,omitempty"`
	Color       *string    `json:"color,omitempty"`
	Description *string    `json:"description,omitempty"`
	Image       *string    `json:"image,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Vaccinated  *bool      `json:"vaccinated,omitempty"`
	Spayed      *bool      `json:"spayed,omitempty"`
	Status      *PetStatus `json:"status,omitempty"`
}

// Apply devuelve una copia de p con los campos presentes del patch.
func (pp PetPatch) Apply(p Pet) Pet {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&p.Name, pp.Name)
	setStr(&p.Species, pp.Species)
	setStr(&p.Breed, pp.Breed)
	setStr(&p.Age, pp.Age)
	setStr(&p.Gender, pp.Gender)
	setStr(&p.Size, pp.Size)
	setStr(&p.Color, pp.Color)
	setStr(&p.Description, pp.Description)
	setStr(&p.Image, pp.Image)
	setStr(&p.Location, pp.Location)
	if pp.Vaccinated != nil {
		p.Vaccinated = *pp.Vaccinated
	}
	if pp.Spayed != nil {
		p.Spayed = *pp.Spayed
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	return p
}

type Application struct {
	ID             string            `json:"id"`
	PetID          string            `json:"petId"`
	PetName        string            `json:"petName"`
	ApplicantName  string            `json:"applicantName"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Address        string            `json:"address"`
	Experience     string            `json:"experience"`
	Reason         string            `json:"reason"`
	Status         ApplicationStatus `json:"status"`
	DateSubmitted  string            `json:"dateSubmitted"`
	ApplicantImage string            `json:"applicantImage"`
}

func (a Application) Key() string { return a.ID }

func (a Application) WithKey(id string) Application {
	a.ID = id
	return a
}

type User struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Role        Role   `json:"role,omitempty"`
}

// AuthResponse es lo que devuelven login/register.
type AuthResponse struct {
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// PetList es el sobre de GET /api/all-pets.
type PetList struct {
	Data []Pet `json:"data"`
}
