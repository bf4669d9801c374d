package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_SuccessDecodesBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123456789", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)

	var out struct {
		Token string `json:"token"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "api/pet-user/login", Bearer("tok-123456789"), map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "abc", out.Token)
}

func TestDoJSON_NonOKCarriesServerMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusUnauthorized, he.StatusCode)
	assert.Equal(t, "Invalid credentials", he.Message)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestDoJSON_NonJSONBodyIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)

	var out map[string]any
	err = c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, &out)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "unmarshal json", te.Op)
}

func TestDoJSON_UnreachableIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(200 * time.Millisecond)
	err := c.DoJSON(context.Background(), http.MethodGet, url+"/x", nil, nil, nil)
	var te *TransportError
	require.True(t, errors.As(err, &te))
}

func TestResolveURL_RelativeRequiresBase(t *testing.T) {
	c := New(0)
	_, err := c.resolveURL("/api/all-pets")
	require.Error(t, err)

	_, err = NewWithBaseURL("::not a url", time.Second)
	require.Error(t, err)
}

func TestBearer_EmptyToken(t *testing.T) {
	assert.Nil(t, Bearer("  "))
}
