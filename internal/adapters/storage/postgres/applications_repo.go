package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/models"
)

type ApplicationsRepo struct {
	db *sql.DB
}

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

const applicationColumns = `
	id, pet_id, pet_name, applicant_user_id, applicant_name,
	email, phone, address, experience, reason, applicant_image,
	status, date_submitted, reviewed_by, created_at, updated_at, reviewed_at`

func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		a.ID,
		a.PetID,
		a.PetName,
		a.ApplicantUserID,
		a.ApplicantName,
		a.Email,
		a.Phone,
		a.Address,
		a.Experience,
		a.Reason,
		a.ApplicantImage,
		string(a.Status),
		a.DateSubmitted,
		a.ReviewedBy,
		a.CreatedAt,
		a.UpdatedAt,
		toNullTime(a.ReviewedAt),
	)
	return err
}

// Update solo toca la parte mutable (revisión).
func (r *ApplicationsRepo) Update(ctx context.Context, a applications.Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications
		SET
			status = $2,
			reviewed_by = $3,
			updated_at = $4,
			reviewed_at = $5
		WHERE id = $1
	`,
		a.ID,
		string(a.Status),
		a.ReviewedBy,
		a.UpdatedAt,
		toNullTime(a.ReviewedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return applications.ErrNotFound
	}
	return nil
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return applications.Application{}, applications.ErrNotFound
		}
		return applications.Application{}, err
	}
	return a, nil
}

func (r *ApplicationsRepo) List(ctx context.Context, status models.ApplicationStatus) ([]applications.Application, error) {
	if status == "" {
		return r.query(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY seq DESC`)
	}
	return r.query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE status = $1 ORDER BY seq DESC`, string(status))
}

func (r *ApplicationsRepo) ListByApplicant(ctx context.Context, userID string) ([]applications.Application, error) {
	return r.query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE applicant_user_id = $1 ORDER BY seq DESC`, userID)
}

func (r *ApplicationsRepo) query(ctx context.Context, q string, args ...any) ([]applications.Application, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]applications.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplication(s rowScanner) (applications.Application, error) {
	var a applications.Application
	var status string
	var submitted time.Time
	var reviewedAt sql.NullTime
	if err := s.Scan(
		&a.ID,
		&a.PetID,
		&a.PetName,
		&a.ApplicantUserID,
		&a.ApplicantName,
		&a.Email,
		&a.Phone,
		&a.Address,
		&a.Experience,
		&a.Reason,
		&a.ApplicantImage,
		&status,
		&submitted,
		&a.ReviewedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
		&reviewedAt,
	); err != nil {
		return applications.Application{}, err
	}
	a.Status = models.ApplicationStatus(status)
	a.DateSubmitted = submitted.Format(time.DateOnly)
	if reviewedAt.Valid {
		t := reviewedAt.Time
		a.ReviewedAt = &t
	}
	return a, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
