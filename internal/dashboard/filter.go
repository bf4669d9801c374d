package dashboard

import (
	"fmt"
	"strings"

	"pet-adoption/internal/models"
)

// Centinelas de "mostrar todo" de cada selector.
const (
	AllStatuses = "all"
	AnySpecies  = "available"
)

// containsFold: needle vacío matchea siempre. Los espacios cuentan como
// texto a buscar.
func containsFold(needle string, haystack ...string) bool {
	needle = strings.ToLower(needle)
	if needle == "" {
		return true
	}
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// PetFilter es la vista de admin: todos los estados, filtro por status.
type PetFilter struct {
	Search string
	Status string
}

func (f PetFilter) Match(p models.Pet) bool {
	if !containsFold(f.Search, p.Name, p.Breed, p.Species) {
		return false
	}
	return f.Status == "" || f.Status == AllStatuses || string(p.Status) == f.Status
}

// AdoptableFilter es la vista de usuario: solo mascotas disponibles,
// filtro por especie sin distinguir mayúsculas.
type AdoptableFilter struct {
	Search  string
	Species string
}

func (f AdoptableFilter) Match(p models.Pet) bool {
	if p.Status != models.PetAvailable {
		return false
	}
	if !containsFold(f.Search, p.Name, p.Breed, p.Species) {
		return false
	}
	return f.Species == "" || f.Species == AnySpecies || strings.EqualFold(p.Species, f.Species)
}

// ApplicationFilter sirve para las pestañas all/pending/approved/rejected.
type ApplicationFilter struct {
	Search string
	Status string
}

func (f ApplicationFilter) Match(a models.Application) bool {
	if !containsFold(f.Search, a.ApplicantName, a.PetName, a.Email) {
		return false
	}
	return f.Status == "" || f.Status == AllStatuses || string(a.Status) == f.Status
}

// Summary es el texto de conteo: "3 of 10 pets".
func Summary(filtered, total int, noun string) string {
	return fmt.Sprintf("%d of %d %s", filtered, total, noun)
}

type DashboardStats struct {
	TotalPets            int `json:"totalPets"`
	AvailablePets        int `json:"availablePets"`
	PendingAdoptions     int `json:"pendingAdoptions"`
	AdoptedPets          int `json:"adoptedPets"`
	TotalApplications    int `json:"totalApplications"`
	PendingApplications  int `json:"pendingApplications"`
	ApprovedApplications int `json:"approvedApplications"`
	RejectedApplications int `json:"rejectedApplications"`
}

func Stats(pets []models.Pet, apps []models.Application) DashboardStats {
	s := DashboardStats{TotalPets: len(pets), TotalApplications: len(apps)}
	for _, p := range pets {
		switch p.Status {
		case models.PetAvailable:
			s.AvailablePets++
		case models.PetPending:
			s.PendingAdoptions++
		case models.PetAdopted:
			s.AdoptedPets++
		}
	}
	for _, a := range apps {
		switch a.Status {
		case models.ApplicationPending:
			s.PendingApplications++
		case models.ApplicationApproved:
			s.ApprovedApplications++
		case models.ApplicationRejected:
			s.RejectedApplications++
		}
	}
	return s
}
