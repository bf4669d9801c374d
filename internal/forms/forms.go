// Package forms define los borradores de cada formulario y sus schemas de
// validación. Cliente y servidor validan con los mismos schemas.
package forms

import (
	"strings"

	"pet-adoption/internal/forms/validate"
	"pet-adoption/internal/models"
)

// Nombres de campo (coinciden con las keys JSON).
const (
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldFirstName            = "firstName"
	FieldLastName             = "lastName"
	FieldPhone                = "phone"
	FieldAddress              = "address"
	FieldDepartment           = "department"
	FieldEmployeeID           = "employeeId"
	FieldTerms                = "terms"

	FieldName        = "name"
	FieldSpecies     = "species"
	FieldBreed       = "breed"
	FieldAge         = "age"
	FieldGender      = "gender"
	FieldSize        = "size"
	FieldColor       = "color"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldImage       = "image"

	FieldPetID         = "petId"
	FieldApplicantName = "applicantName"
	FieldExperience    = "experience"
	FieldReason        = "reason"
)

var (
	emailRule = validate.Rule{
		Field: FieldEmail, Label: "Email", Required: true,
		Check: validate.Email, Message: validate.MsgEmail,
	}
	passwordRule = validate.Rule{
		Field: FieldPassword, Label: "Password", Required: true,
		Check: validate.Password, Message: validate.MsgPassword,
	}
	confirmRule = validate.Rule{
		Field: FieldPasswordConfirmation, Required: true,
		RequiredMessage: validate.MsgConfirmRequired,
	}
	phoneRule = validate.Rule{
		Field: FieldPhone, Label: "Phone number", Required: true,
		Check: validate.Phone, Message: validate.MsgPhone,
	}
	confirmMatch = validate.Match{
		Field: FieldPasswordConfirmation, Other: FieldPassword,
		Message: validate.MsgPasswordsDiffer,
	}
	termsGate = validate.Gate{Field: FieldTerms, Message: validate.MsgTerms}
)

// LoginSchema: login de user, moderator y admin.
var LoginSchema = validate.Schema{
	Rules: []validate.Rule{emailRule, passwordRule},
}

var RegisterSchema = validate.Schema{
	Rules: []validate.Rule{
		{Field: FieldFirstName, Label: "First name", Required: true},
		{Field: FieldLastName, Label: "Last name", Required: true},
		emailRule,
		passwordRule,
		confirmRule,
	},
	Matches: []validate.Match{confirmMatch},
	Gates:   []validate.Gate{termsGate},
}

var AdminRegisterSchema = validate.Schema{
	Rules: []validate.Rule{
		{Field: FieldFirstName, Label: "First name", Required: true},
		{Field: FieldLastName, Label: "Last name", Required: true},
		emailRule,
		phoneRule,
		{Field: FieldDepartment, Label: "Department", Required: true},
		{Field: FieldEmployeeID, Label: "Employee ID", Required: true},
		passwordRule,
		confirmRule,
	},
	Matches: []validate.Match{confirmMatch},
	Gates:   []validate.Gate{termsGate},
}

// PetSchema: campos obligatorios del modal de alta/edición.
var PetSchema = validate.Schema{
	Rules: []validate.Rule{
		{Field: FieldName, Label: "Name", Required: true},
		{Field: FieldSpecies, Label: "Species", Required: true},
		{Field: FieldBreed, Label: "Breed", Required: true},
		{Field: FieldAge, Label: "Age", Required: true},
		{Field: FieldGender, Label: "Gender", Required: true},
		{Field: FieldSize, Label: "Size", Required: true},
		{Field: FieldLocation, Label: "Location", Required: true},
	},
}

var ApplicationSchema = validate.Schema{
	Rules: []validate.Rule{
		{Field: FieldPetID, Label: "Pet", Required: true},
		{Field: FieldApplicantName, Label: "Name", Required: true},
		emailRule,
		phoneRule,
		{Field: FieldAddress, Label: "Address", Required: true},
		{Field: FieldExperience, Label: "Experience", Required: true},
		{Field: FieldReason, Label: "Reason", Required: true},
	},
}

type LoginDraft struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember,omitempty"`
}

func (d LoginDraft) Field(name string) string {
	switch name {
	case FieldEmail:
		return d.Email
	case FieldPassword:
		return d.Password
	}
	return ""
}

type RegisterDraft struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Email                string `json:"email"`
	Phone                string `json:"phone,omitempty"`
	Address              string `json:"address,omitempty"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Terms                bool   `json:"terms"`
}

func (d RegisterDraft) Field(name string) string {
	switch name {
	case FieldFirstName:
		return d.FirstName
	case FieldLastName:
		return d.LastName
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldAddress:
		return d.Address
	case FieldPassword:
		return d.Password
	case FieldPasswordConfirmation:
		return d.PasswordConfirmation
	}
	return ""
}

func (d RegisterDraft) Flag(name string) bool {
	return name == FieldTerms && d.Terms
}

type AdminRegisterDraft struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Department           string `json:"department"`
	EmployeeID           string `json:"employeeId"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Terms                bool   `json:"terms"`
}

func (d AdminRegisterDraft) Field(name string) string {
	switch name {
	case FieldFirstName:
		return d.FirstName
	case FieldLastName:
		return d.LastName
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldDepartment:
		return d.Department
	case FieldEmployeeID:
		return d.EmployeeID
	case FieldPassword:
		return d.Password
	case FieldPasswordConfirmation:
		return d.PasswordConfirmation
	}
	return ""
}

func (d AdminRegisterDraft) Flag(name string) bool {
	return name == FieldTerms && d.Terms
}

// PetDraft son los campos editables de una mascota (sin id, status ni fecha).
type PetDraft struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Size        string `json:"size"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Image       string `json:"image,omitempty"`
	Vaccinated  bool   `json:"vaccinated"`
	Spayed      bool   `json:"spayed"`
}

func (d PetDraft) Field(name string) string {
	switch name {
	case FieldName:
		return d.Name
	case FieldSpecies:
		return d.Species
	case FieldBreed:
		return d.Breed
	case FieldAge:
		return d.Age
	case FieldGender:
		return d.Gender
	case FieldSize:
		return d.Size
	case FieldColor:
		return d.Color
	case FieldDescription:
		return d.Description
	case FieldLocation:
		return d.Location
	case FieldImage:
		return d.Image
	}
	return ""
}

// PetDraftFrom copia los campos editables de p.
func PetDraftFrom(p models.Pet) PetDraft {
	return PetDraft{
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Age:         p.Age,
		Gender:      p.Gender,
		Size:        p.Size,
		Color:       p.Color,
		Description: p.Description,
		Location:    p.Location,
		Image:       p.Image,
		Vaccinated:  p.Vaccinated,
		Spayed:      p.Spayed,
	}
}

// PlaceholderImage se usa cuando el alta no trae foto.
const PlaceholderImage = "/placeholder.svg?height=300&width=300"

// NewPet arma la mascota a crear: status available y fecha de hoy.
func (d PetDraft) NewPet(id, today string) models.Pet {
	img := strings.TrimSpace(d.Image)
	if img == "" {
		img = PlaceholderImage
	}
	return models.Pet{
		ID:          id,
		Name:        d.Name,
		Species:     d.Species,
		Breed:       d.Breed,
		Age:         d.Age,
		Gender:      d.Gender,
		Size:        d.Size,
		Color:       d.Color,
		Description: d.Description,
		Image:       img,
		Status:      models.PetAvailable,
		Location:    d.Location,
		DateAdded:   today,
		Vaccinated:  d.Vaccinated,
		Spayed:      d.Spayed,
	}
}

// Patch devuelve solo los campos editables; id, status y dateAdded nunca
// viajan. Una imagen vacía conserva la actual.
func (d PetDraft) Patch() models.PetPatch {
	p := models.PetPatch{
		Name:        strPtr(d.Name),
		Species:     strPtr(d.Species),
		Breed:       strPtr(d.Breed),
		Age:         strPtr(d.Age),
		Gender:      strPtr(d.Gender),
		Size:        strPtr(d.Size),
		Color:       strPtr(d.Color),
		Description: strPtr(d.Description),
		Location:    strPtr(d.Location),
		Vaccinated:  boolPtr(d.Vaccinated),
		Spayed:      boolPtr(d.Spayed),
	}
	if strings.TrimSpace(d.Image) != "" {
		p.Image = strPtr(d.Image)
	}
	return p
}

type ApplicationDraft struct {
	PetID         string `json:"petId"`
	ApplicantName string `json:"applicantName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Experience    string `json:"experience"`
	Reason        string `json:"reason"`
}

func (d ApplicationDraft) Field(name string) string {
	switch name {
	case FieldPetID:
		return d.PetID
	case FieldApplicantName:
		return d.ApplicantName
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldAddress:
		return d.Address
	case FieldExperience:
		return d.Experience
	case FieldReason:
		return d.Reason
	}
	return ""
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
