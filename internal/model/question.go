package model

import (
	"time"

	"github.com/google/uuid"
)

// Subject enumerates the NEET subjects. SubjectMixed is only valid in
// generation requests; stored questions always carry a concrete subject.
type Subject string

const (
	SubjectPhysics   Subject = "Physics"
	SubjectChemistry Subject = "Chemistry"
	SubjectBiology   Subject = "Biology"
	SubjectMixed     Subject = "Mixed"
)

// Subjects lists the three concrete subjects in display order.
var Subjects = []Subject{SubjectPhysics, SubjectChemistry, SubjectBiology}

// IsConcrete reports whether s is one of the three real subjects.
func (s Subject) IsConcrete() bool {
	return s == SubjectPhysics || s == SubjectChemistry || s == SubjectBiology
}

// Difficulty enumerates question difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Question is a single multiple-choice question. Immutable once created.
type Question struct {
	ID            uuid.UUID  `json:"id"`
	QuestionText  string     `json:"question_text"`
	OptionA       string     `json:"option_a"`
	OptionB       string     `json:"option_b"`
	OptionC       string     `json:"option_c"`
	OptionD       string     `json:"option_d"`
	CorrectAnswer string     `json:"correct_answer"`
	Subject       Subject    `json:"subject"`
	Difficulty    Difficulty `json:"difficulty"`
	Topic         *string    `json:"topic,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// GenerateQuestionsRequest is the payload for AI question generation.
type GenerateQuestionsRequest struct {
	Subject    string `json:"subject" binding:"required,oneof=Physics Chemistry Biology Mixed"`
	Count      int    `json:"count" binding:"required,gt=0,lte=30"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
}
