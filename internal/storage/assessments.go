package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/db"
)

var ErrNotFound = errors.New("assessment not found")

// Assessment is a completed valuation quote. The frontend stores the id in
// the browser and looks the record back up when the customer proceeds to
// booking or payment.
type Assessment struct {
	ID        string
	Brand     string
	Model     string
	Storage   string
	Condition map[string]string
	Price     int64
	Currency  string
	Grade     string
	CreatedAt time.Time
}

type AssessmentRepository struct {
	pool *db.Pool
}

func NewAssessmentRepository(pool *db.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

func (r *AssessmentRepository) Insert(ctx context.Context, a *Assessment) (string, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	condition, err := json.Marshal(a.Condition)
	if err != nil {
		return "", err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO assessments (id, brand, model, storage, condition, price, currency, grade)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.Brand, a.Model, a.Storage, condition, a.Price, a.Currency, a.Grade)
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

func (r *AssessmentRepository) Get(ctx context.Context, id string) (Assessment, error) {
	var a Assessment
	var condition []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, brand, model, storage, condition, price, currency, grade, created_at
		FROM assessments
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Brand, &a.Model, &a.Storage, &condition, &a.Price, &a.Currency, &a.Grade, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Assessment{}, ErrNotFound
	}
	if err != nil {
		return Assessment{}, err
	}
	if len(condition) > 0 {
		if err := json.Unmarshal(condition, &a.Condition); err != nil {
			return Assessment{}, err
		}
	}
	return a, nil
}
