package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/models"
)

type applicationRepo struct {
	mu   sync.RWMutex
	seq  uint64
	byID map[string]applicationRow
}

type applicationRow struct {
	seq uint64
	app applications.Application
}

func NewApplicationRepo() applications.Repository {
	return &applicationRepo{
		byID: make(map[string]applicationRow),
	}
}

func (r *applicationRepo) Create(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("application id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("application already exists")
	}
	r.seq++
	r.byID[a.ID] = applicationRow{seq: r.seq, app: a}
	return nil
}

func (r *applicationRepo) Update(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, exists := r.byID[a.ID]
	if !exists {
		return applications.ErrNotFound
	}
	row.app = a
	r.byID[a.ID] = row
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.byID[id]
	if !ok {
		return applications.Application{}, applications.ErrNotFound
	}
	return row.app, nil
}

func (r *applicationRepo) List(ctx context.Context, status models.ApplicationStatus) ([]applications.Application, error) {
	return r.collect(func(a applications.Application) bool {
		return status == "" || a.Status == status
	}), nil
}

func (r *applicationRepo) ListByApplicant(ctx context.Context, userID string) ([]applications.Application, error) {
	return r.collect(func(a applications.Application) bool {
		return a.ApplicantUserID == userID
	}), nil
}

// collect devuelve del más nuevo al más viejo.
func (r *applicationRepo) collect(keep func(applications.Application) bool) []applications.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]applicationRow, 0)
	for _, row := range r.byID {
		if keep(row.app) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	out := make([]applications.Application, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.app)
	}
	return out
}
