package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("report not found")

type Repository interface {
	Create(ctx context.Context, rep *Report) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Report, error)
	GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Report, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Create(ctx context.Context, rep *Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}

	query := `
		INSERT INTO health_reports (id, user_id, title, symptoms, assessment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rep.ID, rep.UserID, rep.Title, rep.Symptoms, rep.Assessment).Scan(&rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Report, error) {
	query := `
		SELECT id, user_id, title, symptoms, assessment, created_at
		FROM health_reports
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		var rep Report
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.Title, &rep.Symptoms, &rep.Assessment, &rep.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// GetByIDAndUser filters by both id and owner. Fetching by id alone would let
// one user read another's report, so the double filter stays.
func (r *postgresRepo) GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Report, error) {
	query := `
		SELECT id, user_id, title, symptoms, assessment, created_at
		FROM health_reports
		WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, id, userID)

	var rep Report
	err := row.Scan(&rep.ID, &rep.UserID, &rep.Title, &rep.Symptoms, &rep.Assessment, &rep.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}
