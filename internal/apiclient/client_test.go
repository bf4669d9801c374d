package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pet-adoption/internal/forms"
	"pet-adoption/internal/models"
	"pet-adoption/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c, err := New(ts.URL, time.Second)
	require.NoError(t, err)
	return c
}

func TestLogin_PostsDraft(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, pathLogin, r.URL.Path)
		var d forms.LoginDraft
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&d))
		assert.Equal(t, "a@b.co", d.Email)
		_ = json.NewEncoder(w).Encode(models.AuthResponse{Token: "tok-0123456789"})
	})

	resp, err := c.Login(context.Background(), forms.LoginDraft{Email: "a@b.co", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "tok-0123456789", resp.Token)
}

func TestAllPets_RequiresEnvelope(t *testing.T) {
	var body atomic.Value
	body.Store(`{"data":[{"id":"1","name":"Luna","species":"Cat","status":"available"}]}`)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body.Load().(string)))
	})

	pets, err := c.AllPets(context.Background())
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "Luna", pets[0].Name)

	body.Store(`{"items":[]}`)
	_, err = c.AllPets(context.Background())
	assert.ErrorIs(t, err, ErrMalformed)

	body.Store(`{"data":[]}`)
	pets, err = c.AllPets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestCurrentUser_SendsBearerAnd401(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-0123456789" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","role":"moderator"}`))
	})

	u, err := c.CurrentUser(context.Background(), "tok-0123456789")
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, u.Role)

	_, err = c.CurrentUser(context.Background(), "other-token-xx")
	assert.True(t, httpclient.IsStatus(err, http.StatusUnauthorized))
}

func TestAuthenticatedRoutesUseTokenSource(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.RequestURI()+" "+r.Header.Get("Authorization"))
		mu.Unlock()
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"data":[]}`))
		default:
			_, _ = w.Write([]byte(`{"id":"x"}`))
		}
	})
	c.Token = func() string { return "tok-0123456789" }
	ctx := context.Background()

	_, err := c.CreatePet(ctx, forms.PetDraft{Name: "Luna"})
	require.NoError(t, err)
	_, err = c.UpdatePet(ctx, "p 1", models.PetPatch{})
	require.NoError(t, err)
	require.NoError(t, c.DeletePet(ctx, "p1"))
	_, err = c.Applications(ctx, "pending")
	require.NoError(t, err)
	_, err = c.ReviewApplication(ctx, "a1", models.ApplicationRejected)
	require.NoError(t, err)
	_, err = c.ReviewApplication(ctx, "a1", models.ApplicationPending)
	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"POST /api/pets Bearer tok-0123456789",
		"PATCH /api/pets/p%201 Bearer tok-0123456789",
		"DELETE /api/pets/p1 Bearer tok-0123456789",
		"GET /api/applications?status=pending Bearer tok-0123456789",
		"POST /api/applications/a1/reject Bearer tok-0123456789",
	}, seen)
}
