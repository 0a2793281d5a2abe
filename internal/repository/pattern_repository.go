package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmind/neetprep-backend/internal/model"
)

// ErrPatternNotFound is returned when a pattern id does not exist.
var ErrPatternNotFound = errors.New("pattern not found")

// PatternRepository handles detected-pattern data access. Evidence and
// subject distribution are jsonb columns, so the domain model keeps typed
// slices and maps and pgx does the (de)serialization at this boundary.
type PatternRepository struct {
	pool *pgxpool.Pool
}

// NewPatternRepository creates a new PatternRepository.
func NewPatternRepository(pool *pgxpool.Pool) *PatternRepository {
	return &PatternRepository{pool: pool}
}

// Create inserts a detected pattern and fills in its generated id.
func (r *PatternRepository) Create(ctx context.Context, p *model.Pattern) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO detected_patterns
		   (user_id, pattern_type, title, description, confidence, evidence, recommendation, subject_distribution, detected_at, is_resolved)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		p.UserID, p.PatternType, p.Title, p.Description, p.Confidence,
		p.Evidence, p.Recommendation, p.SubjectDistribution, p.DetectedAt, p.IsResolved,
	).Scan(&p.ID)
}

// ListByUser retrieves a user's unresolved patterns, newest first.
func (r *PatternRepository) ListByUser(ctx context.Context, userID string) ([]model.Pattern, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, pattern_type, title, description, confidence, evidence, recommendation, subject_distribution, detected_at, is_resolved
		 FROM detected_patterns
		 WHERE user_id = $1 AND NOT is_resolved
		 ORDER BY detected_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []model.Pattern
	for rows.Next() {
		var p model.Pattern
		if err := rows.Scan(&p.ID, &p.UserID, &p.PatternType, &p.Title, &p.Description, &p.Confidence,
			&p.Evidence, &p.Recommendation, &p.SubjectDistribution, &p.DetectedAt, &p.IsResolved); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// Resolve flips a pattern's resolved flag. The owning user id guards
// against resolving another user's pattern.
func (r *PatternRepository) Resolve(ctx context.Context, id uuid.UUID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE detected_patterns SET is_resolved = TRUE
		 WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPatternNotFound
	}
	return nil
}

// GetByID retrieves a single pattern.
func (r *PatternRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Pattern, error) {
	p := &model.Pattern{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, pattern_type, title, description, confidence, evidence, recommendation, subject_distribution, detected_at, is_resolved
		 FROM detected_patterns WHERE id = $1`, id,
	).Scan(&p.ID, &p.UserID, &p.PatternType, &p.Title, &p.Description, &p.Confidence,
		&p.Evidence, &p.Recommendation, &p.SubjectDistribution, &p.DetectedAt, &p.IsResolved)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPatternNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
