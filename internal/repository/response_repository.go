package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmind/neetprep-backend/internal/model"
)

// ResponseRepository handles answer record data access.
type ResponseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository creates a new ResponseRepository.
func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

// Upsert records an answer. A resubmission for the same test position
// (retried request after a dropped response) overwrites the earlier row
// instead of double-counting it in aggregated statistics.
func (r *ResponseRepository) Upsert(ctx context.Context, resp *model.UserResponse) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO user_responses
		   (user_id, question_id, selected_answer, is_correct, time_taken, test_id, question_position, test_duration_so_far, subject, answered_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (test_id, question_position) DO UPDATE SET
		   selected_answer = EXCLUDED.selected_answer,
		   is_correct = EXCLUDED.is_correct,
		   time_taken = EXCLUDED.time_taken,
		   test_duration_so_far = EXCLUDED.test_duration_so_far,
		   answered_at = EXCLUDED.answered_at
		 RETURNING id`,
		resp.UserID, resp.QuestionID, resp.SelectedAnswer, resp.IsCorrect, resp.TimeTaken,
		resp.TestID, resp.QuestionPosition, resp.TestDurationSoFar, resp.Subject, resp.AnsweredAt,
	).Scan(&resp.ID)
}

// ListByTest retrieves all responses for a test, ordered by position.
func (r *ResponseRepository) ListByTest(ctx context.Context, testID string, limit int) ([]model.UserResponse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, question_id, selected_answer, is_correct, time_taken, test_id, question_position, test_duration_so_far, subject, answered_at
		 FROM user_responses
		 WHERE test_id = $1
		 ORDER BY question_position
		 LIMIT $2`, testID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResponses(rows)
}

// ListByUser retrieves a user's most recent responses up to limit.
func (r *ResponseRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.UserResponse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, question_id, selected_answer, is_correct, time_taken, test_id, question_position, test_duration_so_far, subject, answered_at
		 FROM user_responses
		 WHERE user_id = $1
		 ORDER BY answered_at DESC
		 LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResponses(rows)
}

// AggregateByUser returns the total answered and total incorrect counts
// for a user in one query.
func (r *ResponseRepository) AggregateByUser(ctx context.Context, userID string) (total, mistakes int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_correct)
		 FROM user_responses WHERE user_id = $1`, userID,
	).Scan(&total, &mistakes)
	return total, mistakes, err
}

type responseRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanResponses(rows responseRows) ([]model.UserResponse, error) {
	var responses []model.UserResponse
	for rows.Next() {
		var resp model.UserResponse
		if err := rows.Scan(&resp.ID, &resp.UserID, &resp.QuestionID, &resp.SelectedAnswer, &resp.IsCorrect,
			&resp.TimeTaken, &resp.TestID, &resp.QuestionPosition, &resp.TestDurationSoFar, &resp.Subject, &resp.AnsweredAt); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
