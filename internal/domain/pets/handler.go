package pets

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-adoption/internal/forms"
	"pet-adoption/internal/forms/validate"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/models"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Catálogo público
	r.Get("/api/all-pets", listPetsHandler(svc))
	r.Get("/api/pets/{petID}", getPetHandler(svc))

	// Alta/edición/baja (admin)
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireRole(models.RoleAdmin))
		ar.Post("/api/pets", createPetHandler(svc))
		ar.Patch("/api/pets/{petID}", updatePetHandler(svc))
		ar.Delete("/api/pets/{petID}", deletePetHandler(svc))
	})
}

// listPetsHandler godoc
// @Summary  Catálogo de mascotas
// @Tags     pets
// @Produce  json
// @Success  200 {object} models.PetList
// @Router   /api/all-pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}

		out := make([]models.Pet, 0, len(items))
		for _, p := range items {
			out = append(out, p.Model())
		}
		writeJSON(w, http.StatusOK, models.PetList{Data: out})
	}
}

// getPetHandler godoc
// @Summary  Detalle de mascota
// @Tags     pets
// @Produce  json
// @Param    petID path string true "id"
// @Success  200 {object} models.Pet
// @Failure  404 {object} errorResponse
// @Router   /api/pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p.Model())
	}
}

// createPetHandler godoc
// @Summary  Publicar mascota
// @Tags     pets
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body forms.PetDraft true "mascota"
// @Success  201 {object} models.Pet
// @Failure  400 {object} errorResponse
// @Failure  403 {object} errorResponse
// @Router   /api/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forms.PetDraft
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", nil)
			return
		}

		p, err := svc.Create(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p.Model())
	}
}

// updatePetHandler godoc
// @Summary  Editar mascota (merge superficial)
// @Tags     pets
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    petID path string true "id"
// @Param    body body models.PetPatch true "campos a cambiar"
// @Success  200 {object} models.Pet
// @Failure  400 {object} errorResponse
// @Failure  404 {object} errorResponse
// @Router   /api/pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req models.PetPatch
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", nil)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p.Model())
	}
}

// deletePetHandler godoc
// @Summary  Borrar mascota
// @Tags     pets
// @Security BearerAuth
// @Param    petID path string true "id"
// @Success  204
// @Failure  404 {object} errorResponse
// @Router   /api/pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeServiceError(w http.ResponseWriter, err error) {
	var ve *validate.Error
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error(), ve.Fields.Messages())
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "pet not found", nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, fields map[string]string) {
	writeJSON(w, status, errorResponse{Message: msg, Errors: fields})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
