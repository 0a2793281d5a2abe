package model

import "github.com/google/uuid"

// SubjectScore is the per-subject slice of a test's results.
type SubjectScore struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// QuestionTiming identifies a question together with the seconds spent on it.
type QuestionTiming struct {
	QuestionID uuid.UUID `json:"question_id"`
	TimeTaken  int       `json:"time_taken"`
}

// Performance holds the timing extremes of one test.
type Performance struct {
	FastestQuestion QuestionTiming `json:"fastest_question"`
	SlowestQuestion QuestionTiming `json:"slowest_question"`
}

// TestResults is the summary computed from one test's response records.
// It is derived on demand and never persisted as its own entity.
type TestResults struct {
	TestID           string `json:"test_id"`
	TotalQuestions   int    `json:"total_questions"`
	CorrectAnswers   int    `json:"correct_answers"`
	IncorrectAnswers int    `json:"incorrect_answers"`
	// Accuracy and AvgTimePerQuestion are rounded to 2 decimal places.
	Accuracy           float64                   `json:"accuracy"`
	TotalTime          int                       `json:"total_time"`
	AvgTimePerQuestion float64                   `json:"avg_time_per_question"`
	Grade              string                    `json:"grade"`
	SubjectBreakdown   map[Subject]*SubjectScore `json:"subject_breakdown"`
	Performance        Performance               `json:"performance"`
}

// TestReview pairs a finished test's results with the questions and the
// user's answer map, for the review screen.
type TestReview struct {
	Results   *TestResults   `json:"results"`
	Questions []Question     `json:"questions"`
	Answers   map[int]string `json:"answers"`
}
