package model

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the durable record of one answered question.
// Created once per submitted answer; never mutated by this service.
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	QuestionID     uuid.UUID `json:"question_id"`
	SelectedAnswer string    `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	// TimeTaken is the wall-clock seconds spent on this one question.
	TimeTaken int    `json:"time_taken"`
	TestID    string `json:"test_id"`
	// QuestionPosition is 1-based within the test.
	QuestionPosition int `json:"question_position"`
	// TestDurationSoFar is fractional minutes elapsed in the test when
	// the answer was submitted.
	TestDurationSoFar float64   `json:"test_duration_so_far"`
	Subject           Subject   `json:"subject"`
	AnsweredAt        time.Time `json:"answered_at"`
}

// SubmitAnswerRequest is the payload for answering the current question.
type SubmitAnswerRequest struct {
	SelectedAnswer string `json:"selected_answer" binding:"required,oneof=A B C D"`
}
