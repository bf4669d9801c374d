package applications

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
	r.Route("/api/applications", func(ar chi.Router) {
		// Adoptante
		ar.With(middleware.RequireAuth).Post("/", submitHandler(svc))
		ar.With(middleware.RequireAuth).Get("/mine", listMineHandler(svc))

		// Revisión (moderator/admin)
		ar.Group(func(rr chi.Router) {
			rr.Use(middleware.RequireRole(models.RoleModerator, models.RoleAdmin))
			rr.Get("/", listHandler(svc))
			rr.Post("/{applicationID}/approve", reviewHandler(svc, models.ApplicationApproved))
			rr.Post("/{applicationID}/reject", reviewHandler(svc, models.ApplicationRejected))
		})
	})
}

type applicationList struct {
	Data []models.Application `json:"data"`
}

// submitHandler godoc
// @Summary  Enviar solicitud de adopción
// @Tags     applications
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body forms.ApplicationDraft true "solicitud"
// @Success  201 {object} models.Application
// @Failure  400 {object} errorResponse
// @Failure  404 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /api/applications [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req forms.ApplicationDraft
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", nil)
			return
		}

		a, err := svc.Submit(r.Context(), claims.UserID, req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a.Model())
	}
}

// listMineHandler godoc
// @Summary  Mis solicitudes
// @Tags     applications
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} applicationList
// @Router   /api/applications/mine [get]
func listMineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListMine(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toList(items))
	}
}

// listHandler godoc
// @Summary  Solicitudes (moderación)
// @Tags     applications
// @Produce  json
// @Security BearerAuth
// @Param    status query string false "pending | approved | rejected | all"
// @Success  200 {object} applicationList
// @Failure  400 {object} errorResponse
// @Failure  403 {object} errorResponse
// @Router   /api/applications [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, ok := ParseStatusFilter(r.URL.Query().Get("status"))
		if !ok {
			writeError(w, http.StatusBadRequest, "status must be pending, approved, rejected or all", nil)
			return
		}

		items, err := svc.List(r.Context(), status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toList(items))
	}
}

// reviewHandler godoc
// @Summary  Aprobar o rechazar
// @Tags     applications
// @Produce  json
// @Security BearerAuth
// @Param    applicationID path string true "id"
// @Success  200 {object} models.Application
// @Failure  404 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /api/applications/{applicationID}/approve [post]
// @Router   /api/applications/{applicationID}/reject [post]
func reviewHandler(svc *Service, decision models.ApplicationStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		a, err := svc.Review(r.Context(), chi.URLParam(r, "applicationID"), claims.UserID, decision)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a.Model())
	}
}

func toList(items []Application) applicationList {
	out := make([]models.Application, 0, len(items))
	for _, a := range items {
		out = append(out, a.Model())
	}
	return applicationList{Data: out}
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
		writeError(w, http.StatusNotFound, "application not found", nil)
	case errors.Is(err, ErrPetNotFound):
		writeError(w, http.StatusNotFound, "This pet no longer exists", nil)
	case errors.Is(err, ErrPetUnavailable):
		writeError(w, http.StatusConflict, "This pet is no longer available", nil)
	case errors.Is(err, ErrBadState):
		writeError(w, http.StatusConflict, "application was already reviewed", nil)
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
