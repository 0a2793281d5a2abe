package model

import "time"

// TestSession is one in-progress attempt at a fixed sequence of questions.
// It lives in memory only; the durable trace of a session is its
// UserResponse records.
type TestSession struct {
	TestID  string  `json:"test_id"`
	UserID  string  `json:"user_id"`
	Subject Subject `json:"subject"`
	// Questions has fixed length equal to the requested count.
	Questions []Question `json:"questions"`
	// CurrentQuestion is the zero-based pointer into Questions. Always in
	// [0, len(Questions)) while the session is active.
	CurrentQuestion int       `json:"current_question"`
	StartedAt       time.Time `json:"started_at"`
	// QuestionStartedAt is refreshed every time the pointer advances and
	// anchors the per-question TimeTaken computation.
	QuestionStartedAt time.Time `json:"question_started_at"`
	// Answers maps question index to the option label the user chose.
	// At most one entry per index between 0 and CurrentQuestion inclusive.
	Answers map[int]string `json:"answers"`
}

// StartTestRequest is the payload for starting a new test session.
type StartTestRequest struct {
	Subject       string `json:"subject" binding:"required,oneof=Physics Chemistry Biology Mixed"`
	QuestionCount int    `json:"question_count" binding:"required,gt=0,lte=50"`
}

// SessionProgress is the client-facing view of an active session: the
// current question plus positional bookkeeping, without answer keys for
// questions not yet reached.
type SessionProgress struct {
	TestID          string    `json:"test_id"`
	Subject         Subject   `json:"subject"`
	TotalQuestions  int       `json:"total_questions"`
	CurrentQuestion int       `json:"current_question"`
	Question        *Question `json:"question"`
	StartedAt       time.Time `json:"started_at"`
}
