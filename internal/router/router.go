package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"pet-adoption/docs"
	"pet-adoption/internal/adapters/auth/jwtauth"
	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// devSecret firma tokens cuando no se configura un Issuer (solo dev/tests).
const devSecret = "dev-secret-change-me"

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Issuer firma los tokens de login/registro. Si es nil se usa el
	// verifier cuando también emite, o un manager con secreto de dev.
	Issuer auth.TokenIssuer

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: fotos en data URI se suben acá.
	Images pets.ImageStore

	Logger logger.Logger

	// Moderador inicial (email y password); vacío = no sembrar.
	SeedModeratorEmail    string
	SeedModeratorPassword string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))

	var (
		userRepo users.Repository
		petRepo  pets.Repository
		appRepo  applications.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, using memory storage", map[string]any{"error": err})
			}
		}
	}

	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		petRepo = pg.NewPetsRepo(db)
		appRepo = pg.NewApplicationsRepo(db)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
		appRepo = mem.NewApplicationRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, issuerFor(opts))
	petsSvc := pets.NewService(petRepo, opts.Images)
	appsSvc := applications.NewService(appRepo, petsSvc)

	if opts.SeedModeratorEmail != "" {
		seedModerator(usersSvc, opts.SeedModeratorEmail, opts.SeedModeratorPassword, log)
	}

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	pets.RegisterRoutes(r, petsSvc)
	applications.RegisterRoutes(r, appsSvc)

	return r
}

func issuerFor(opts Options) auth.TokenIssuer {
	if opts.Issuer != nil {
		return opts.Issuer
	}
	if iss, ok := opts.AuthVerifier.(auth.TokenIssuer); ok {
		return iss
	}
	return jwtauth.New(devSecret, 24*time.Hour)
}

func seedModerator(svc *users.Service, email, password string, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, created, err := svc.EnsureModerator(ctx, email, password)
	if err != nil {
		log.Error("seed moderator failed", map[string]any{"email": email, "error": err})
		return
	}
	if created {
		log.Info("moderator seeded", map[string]any{"user_id": u.ID, "email": u.Email})
	}
}
