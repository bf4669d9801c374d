// Package apiclient son los wrappers tipados sobre la API REST de adopciones.
package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"pet-adoption/internal/forms"
	"pet-adoption/internal/models"
	"pet-adoption/internal/platform/httpclient"
)

// ErrMalformed: la respuesta fue 2xx pero no tiene la forma esperada.
var ErrMalformed = errors.New("apiclient: malformed response")

const (
	pathLogin         = "/api/pet-user/login"
	pathRegister      = "/api/pet-user/register"
	pathAdminRegister = "/api/admin/register"
	pathAllPets       = "/api/all-pets"
	pathCurrentUser   = "/api/pets-user"
	pathPets          = "/api/pets"
	pathApplications  = "/api/applications"
)

type Client struct {
	http *httpclient.Client
	// Token devuelve el bearer para rutas autenticadas; puede ser nil.
	Token func() string
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// NewWithHTTP permite inyectar un httpclient ya armado (tests).
func NewWithHTTP(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

func (c *Client) auth() map[string]string {
	if c.Token == nil {
		return nil
	}
	return httpclient.Bearer(c.Token())
}

func (c *Client) Login(ctx context.Context, d forms.LoginDraft) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.http.DoJSON(ctx, http.MethodPost, pathLogin, nil, d, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, d forms.RegisterDraft) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.http.DoJSON(ctx, http.MethodPost, pathRegister, nil, d, &out)
	return out, err
}

func (c *Client) RegisterAdmin(ctx context.Context, d forms.AdminRegisterDraft) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.http.DoJSON(ctx, http.MethodPost, pathAdminRegister, nil, d, &out)
	return out, err
}

// CurrentUser usa el token explícito (no c.Token) porque lo llama la sesión
// al validar el token guardado.
func (c *Client) CurrentUser(ctx context.Context, token string) (models.User, error) {
	var out models.User
	err := c.http.DoJSON(ctx, http.MethodGet, pathCurrentUser, httpclient.Bearer(token), nil, &out)
	return out, err
}

// AllPets exige el sobre {"data": [...]}.
func (c *Client) AllPets(ctx context.Context) ([]models.Pet, error) {
	var out struct {
		Data *[]models.Pet `json:"data"`
	}
	if err := c.http.DoJSON(ctx, http.MethodGet, pathAllPets, nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, ErrMalformed
	}
	return *out.Data, nil
}

func (c *Client) CreatePet(ctx context.Context, d forms.PetDraft) (models.Pet, error) {
	var out models.Pet
	err := c.http.DoJSON(ctx, http.MethodPost, pathPets, c.auth(), d, &out)
	return out, err
}

func (c *Client) UpdatePet(ctx context.Context, id string, patch models.PetPatch) (models.Pet, error) {
	var out models.Pet
	err := c.http.DoJSON(ctx, http.MethodPatch, pathPets+"/"+url.PathEscape(id), c.auth(), patch, &out)
	return out, err
}

func (c *Client) DeletePet(ctx context.Context, id string) error {
	return c.http.DoJSON(ctx, http.MethodDelete, pathPets+"/"+url.PathEscape(id), c.auth(), nil, nil)
}

func (c *Client) SubmitApplication(ctx context.Context, d forms.ApplicationDraft) (models.Application, error) {
	var out models.Application
	err := c.http.DoJSON(ctx, http.MethodPost, pathApplications, c.auth(), d, &out)
	return out, err
}

func (c *Client) MyApplications(ctx context.Context) ([]models.Application, error) {
	return c.listApplications(ctx, pathApplications+"/mine")
}

// Applications lista todas (moderator/admin); status vacío o "all" no filtra.
func (c *Client) Applications(ctx context.Context, status string) ([]models.Application, error) {
	p := pathApplications
	if status != "" && status != "all" {
		p += "?status=" + url.QueryEscape(status)
	}
	return c.listApplications(ctx, p)
}

func (c *Client) listApplications(ctx context.Context, p string) ([]models.Application, error) {
	var out struct {
		Data *[]models.Application `json:"data"`
	}
	if err := c.http.DoJSON(ctx, http.MethodGet, p, c.auth(), nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, ErrMalformed
	}
	return *out.Data, nil
}

// ReviewApplication aprueba o rechaza.
func (c *Client) ReviewApplication(ctx context.Context, id string, decision models.ApplicationStatus) (models.Application, error) {
	var action string
	switch decision {
	case models.ApplicationApproved:
		action = "approve"
	case models.ApplicationRejected:
		action = "reject"
	default:
		return models.Application{}, errors.New("apiclient: decision must be approved or rejected")
	}
	var out models.Application
	err := c.http.DoJSON(ctx, http.MethodPost, pathApplications+"/"+url.PathEscape(id)+"/"+action, c.auth(), nil, &out)
	return out, err
}
