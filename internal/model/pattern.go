package model

import (
	"time"

	"github.com/google/uuid"
)

// Pattern is a model-inferred behavioral mistake category derived from a
// user's historical responses. Mutated only by resolving it.
type Pattern struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	PatternType string    `json:"pattern_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	// Confidence is clamped into [0, 100] before persistence.
	Confidence     int      `json:"confidence"`
	Evidence       []string `json:"evidence"`
	Recommendation string   `json:"recommendation"`
	// SubjectDistribution maps subject name to mistake count. Optional.
	SubjectDistribution map[string]int `json:"subject_distribution,omitempty"`
	DetectedAt          time.Time      `json:"detected_at"`
	IsResolved          bool           `json:"is_resolved"`
}

// UserStats is the aggregate a user sees on the home screen.
type UserStats struct {
	TotalQuestions int     `json:"total_questions"`
	Mistakes       int     `json:"mistakes"`
	Accuracy       float64 `json:"accuracy"`
}
