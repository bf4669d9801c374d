// Package session es la única fuente de verdad del estado de autenticación
// del cliente: token, usuario actual y si todavía se está cargando.
package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"unicode/utf8"

	"pet-adoption/internal/models"
	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/platform/logger"
)

// MinTokenLen: tokens guardados más cortos se consideran basura.
const MinTokenLen = 10

var ErrInvalidToken = errors.New("session: token too short")

// UserFetcher resuelve el usuario dueño de un token (GET /api/pets-user).
type UserFetcher interface {
	CurrentUser(ctx context.Context, token string) (models.User, error)
}

type State struct {
	Token     string
	User      *models.User
	IsLoading bool
}

// Authenticated indica si hay token vigente.
func (s State) Authenticated() bool { return s.Token != "" }

type Session struct {
	store Store
	users UserFetcher
	log   logger.Logger

	mu      sync.RWMutex
	token   string
	user    *models.User
	loading bool
	gen     uint64
}

func New(store Store, users UserFetcher, log logger.Logger) *Session {
	if log == nil {
		log = logger.NewNop()
	}
	return &Session{store: store, users: users, log: log}
}

// Init carga el token guardado; si es válido intenta resolver el usuario.
// Un token ausente o corto se descarta del store.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	tok, ok, err := s.store.Get()
	if err != nil {
		s.finishLoading()
		return err
	}
	if !ok || utf8.RuneCountInString(tok) < MinTokenLen {
		if ok {
			s.log.Debug("discarding short stored token", nil)
		}
		_ = s.store.Clear()
		s.mu.Lock()
		s.token, s.user, s.loading = "", nil, false
		s.gen++
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.token = tok
	s.gen++
	s.mu.Unlock()

	return s.RefreshUser(ctx)
}

// RefreshUser consulta el usuario del token actual. Un 401 termina la
// sesión en silencio. Si el token cambió mientras la consulta estaba en
// vuelo, el resultado se descarta.
func (s *Session) RefreshUser(ctx context.Context) error {
	s.mu.Lock()
	tok, gen := s.token, s.gen
	if tok == "" {
		s.loading = false
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	u, err := s.users.CurrentUser(ctx, tok)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}
	s.loading = false

	if err != nil {
		if httpclient.IsStatus(err, http.StatusUnauthorized) {
			s.log.Debug("session expired", nil)
			s.token, s.user = "", nil
			s.gen++
			if cerr := s.store.Clear(); cerr != nil {
				s.log.Warn("clear stored token failed", map[string]any{"error": cerr})
			}
			return nil
		}
		s.log.Warn("fetch current user failed", map[string]any{"error": err})
		return err
	}

	s.user = &u
	return nil
}

// SetToken persiste un token nuevo (login/registro) y lo vuelve el actual.
func (s *Session) SetToken(token string) error {
	if utf8.RuneCountInString(token) < MinTokenLen {
		return ErrInvalidToken
	}
	if err := s.store.Set(token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		s.user = nil
	}
	s.token = token
	s.gen++
	return nil
}

func (s *Session) SetUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

func (s *Session) Logout() error {
	s.mu.Lock()
	s.token, s.user, s.loading = "", nil, false
	s.gen++
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{Token: s.token, IsLoading: s.loading}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

func (s *Session) finishLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
