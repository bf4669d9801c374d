package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/forms"
	"pet-adoption/internal/models"
	"pet-adoption/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo   Repository
	tokens auth.TokenIssuer
	now    func() time.Time
	cost   int
}

func NewService(repo Repository, tokens auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
}

// Session es la respuesta de login/registro.
type Session struct {
	Token string
	User  User
}

func (s *Service) Register(ctx context.Context, in forms.RegisterDraft) (Session, error) {
	if err := forms.RegisterSchema.Check(in); err != nil {
		return Session{}, err
	}

	u, err := s.create(ctx, User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     normalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		Role:      models.RoleUser,
	}, in.Password)
	if err != nil {
		return Session{}, err
	}
	return s.issue(ctx, u)
}

// RegisterAdmin crea la cuenta sin token: el cliente pasa por el login de admins.
func (s *Service) RegisterAdmin(ctx context.Context, in forms.AdminRegisterDraft) (User, error) {
	if err := forms.AdminRegisterSchema.Check(in); err != nil {
		return User{}, err
	}

	return s.create(ctx, User{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      normalizeEmail(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Department: strings.TrimSpace(in.Department),
		EmployeeID: strings.TrimSpace(in.EmployeeID),
		Role:       models.RoleAdmin,
	}, in.Password)
}

func (s *Service) Login(ctx context.Context, in forms.LoginDraft) (Session, error) {
	if err := forms.LoginSchema.Check(in); err != nil {
		return Session{}, err
	}

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)) != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(ctx, u)
}

func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// EnsureModerator crea el moderador inicial si el email no existe. Idempotente.
func (s *Service) EnsureModerator(ctx context.Context, email, password string) (User, bool, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return User{}, false, ErrInvalidInput
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, false, err
	}

	u, err := s.create(ctx, User{
		FirstName: "Shelter",
		LastName:  "Moderator",
		Email:     email,
		Role:      models.RoleModerator,
	}, password)
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (s *Service) create(ctx context.Context, u User, password string) (User, error) {
	if _, err := s.repo.GetByEmail(ctx, u.Email); err == nil {
		return User{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u.ID = uuid.NewString()
	u.PasswordHash = hash
	u.CreatedAt = s.now()

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) issue(ctx context.Context, u User) (Session, error) {
	tok, err := s.tokens.Issue(ctx, auth.Claims{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: tok, User: u}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
