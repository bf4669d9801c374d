package users

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

const (
	msgConflict           = "An account with this email already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgAdminRegistered    = "Admin account created. Please sign in."
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/pet-user/login", loginHandler(svc))
	r.Post("/api/pet-user/register", registerHandler(svc))
	r.Post("/api/admin/register", registerAdminHandler(svc))

	// Usuario actual; el cliente lo usa para rehidratar la sesión.
	r.With(middleware.RequireAuth).Get("/api/pets-user", meHandler(svc))
}

// loginHandler godoc
// @Summary  Login
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body forms.LoginDraft true "credenciales"
// @Success  200 {object} models.AuthResponse
// @Failure  400 {object} errorResponse
// @Failure  401 {object} errorResponse
// @Router   /api/pet-user/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forms.LoginDraft
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", nil)
			return
		}

		sess, err := svc.Login(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAuthResponse(sess))
	}
}

// registerHandler godoc
// @Summary  Registro de adoptante
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body forms.RegisterDraft true "datos"
// @Success  201 {object} models.AuthResponse
// @Failure  400 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /api/pet-user/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forms.RegisterDraft
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", nil)
			return
		}

		sess, err := svc.Register(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAuthResponse(sess))
	}
}

// registerAdminHandler godoc
// @Summary  Registro de administrador (sin token)
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body forms.AdminRegisterDraft true "datos"
// @Success  201 {object} models.AuthResponse
// @Failure  400 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /api/admin/register [post]
func registerAdminHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forms.AdminRegisterDraft
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", nil)
			return
		}

		u, err := svc.RegisterAdmin(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		pub := u.Public()
		writeJSON(w, http.StatusCreated, models.AuthResponse{User: &pub, Message: msgAdminRegistered})
	}
}

// meHandler godoc
// @Summary  Usuario autenticado
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.User
// @Failure  401 {object} errorResponse
// @Router   /api/pets-user [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.Me(r.Context(), claims.UserID)
		if err != nil {
			// Token válido de un usuario que ya no existe: sesión inválida.
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u.Public())
	}
}

func toAuthResponse(s Session) models.AuthResponse {
	pub := s.User.Public()
	return models.AuthResponse{Token: s.Token, User: &pub}
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
	case errors.Is(err, ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials, nil)
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, msgConflict, nil)
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
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
