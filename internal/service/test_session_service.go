package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prepmind/neetprep-backend/internal/model"
)

// QuestionSource supplies validated questions for a new session.
type QuestionSource interface {
	Generate(ctx context.Context, subject model.Subject, count int, difficulty model.Difficulty) ([]model.Question, error)
}

// AnswerStore persists one response record per submitted answer.
type AnswerStore interface {
	Upsert(ctx context.Context, resp *model.UserResponse) error
}

// ResultsProvider computes a finished test's summary and owns the user
// stats cache.
type ResultsProvider interface {
	ComputeTestResults(ctx context.Context, testID string) (*model.TestResults, error)
	InvalidateUserStats(ctx context.Context, userID string)
}

// AnswerOutcome is what the client learns right after submitting: whether
// it was right, and what the right answer was.
type AnswerOutcome struct {
	ResponseID     uuid.UUID `json:"response_id"`
	IsCorrect      bool      `json:"is_correct"`
	SelectedAnswer string    `json:"selected_answer"`
	CorrectAnswer  string    `json:"correct_answer"`
	TimeTaken      int       `json:"time_taken"`
}

// TestSessionService owns the active test sessions: at most one per user,
// held in memory behind the service's mutex. Starting a new test silently
// discards an unfinished one; its already-persisted answers survive.
type TestSessionService struct {
	source  QuestionSource
	answers AnswerStore
	results ResultsProvider
	log     zerolog.Logger

	// nowFn is swapped out in tests to make timing deterministic.
	nowFn func() time.Time

	mu       sync.Mutex
	sessions map[string]*model.TestSession
}

// NewTestSessionService creates a new TestSessionService.
func NewTestSessionService(source QuestionSource, answers AnswerStore, results ResultsProvider, log zerolog.Logger) *TestSessionService {
	return &TestSessionService{
		source:   source,
		answers:  answers,
		results:  results,
		log:      log.With().Str("component", "test_session_service").Logger(),
		nowFn:    time.Now,
		sessions: make(map[string]*model.TestSession),
	}
}

// StartTest fetches questions and opens a fresh session for the user.
// The question source is not contacted for a non-positive count.
func (s *TestSessionService) StartTest(ctx context.Context, userID string, subject model.Subject, questionCount int) (*model.SessionProgress, error) {
	if questionCount <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive", ErrInvalidRequest)
	}

	questions, err := s.source.Generate(ctx, subject, questionCount, model.DifficultyMedium)
	if err != nil {
		if errors.Is(err, ErrProvider) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: question source: %v", ErrProvider, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: question source returned no questions", ErrProvider)
	}

	now := s.nowFn()
	session := &model.TestSession{
		TestID:            newTestID(now),
		UserID:            userID,
		Subject:           subject,
		Questions:         questions,
		CurrentQuestion:   0,
		StartedAt:         now,
		QuestionStartedAt: now,
		Answers:           make(map[int]string, len(questions)),
	}

	s.mu.Lock()
	if old, ok := s.sessions[userID]; ok {
		s.log.Warn().
			Str("user_id", userID).
			Str("discarded_test_id", old.TestID).
			Msg("Replacing unfinished test session")
	}
	s.sessions[userID] = session
	s.mu.Unlock()

	s.log.Info().
		Str("user_id", userID).
		Str("test_id", session.TestID).
		Str("subject", string(subject)).
		Int("questions", len(questions)).
		Msg("Test started")

	return progressOf(session), nil
}

// Current returns the active session's progress view.
func (s *TestSessionService) Current(userID string) (*model.SessionProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return progressOf(session), nil
}

// SubmitAnswer grades the current question against the selected option,
// persists a response record and stores the choice in the answer map.
// Timing comes from the question-start timestamp captured when the
// question became current.
func (s *TestSessionService) SubmitAnswer(ctx context.Context, userID, selected string) (*AnswerOutcome, error) {
	selected = strings.ToUpper(selected)
	now := s.nowFn()

	s.mu.Lock()
	session, ok := s.sessions[userID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}

	idx := session.CurrentQuestion
	question := session.Questions[idx]
	testID := session.TestID
	resp := &model.UserResponse{
		UserID:            userID,
		QuestionID:        question.ID,
		SelectedAnswer:    selected,
		IsCorrect:         selected == strings.ToUpper(question.CorrectAnswer),
		TimeTaken:         int(now.Sub(session.QuestionStartedAt).Seconds()),
		TestID:            testID,
		QuestionPosition:  idx + 1,
		TestDurationSoFar: now.Sub(session.StartedAt).Minutes(),
		Subject:           question.Subject,
		AnsweredAt:        now,
	}
	s.mu.Unlock()

	// Persist outside the lock; the store call may block on the network.
	if err := s.answers.Upsert(ctx, resp); err != nil {
		return nil, fmt.Errorf("%w: record answer: %v", ErrProvider, err)
	}

	s.mu.Lock()
	if current, ok := s.sessions[userID]; ok && current.TestID == testID {
		current.Answers[idx] = selected
	}
	s.mu.Unlock()

	s.results.InvalidateUserStats(ctx, userID)

	return &AnswerOutcome{
		ResponseID:     resp.ID,
		IsCorrect:      resp.IsCorrect,
		SelectedAnswer: selected,
		CorrectAnswer:  strings.ToUpper(question.CorrectAnswer),
		TimeTaken:      resp.TimeTaken,
	}, nil
}

// NextQuestion advances the pointer and restarts the per-question clock.
// At the last question this is a no-op; callers end the test instead.
func (s *TestSessionService) NextQuestion(userID string) (*model.SessionProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}

	if session.CurrentQuestion < len(session.Questions)-1 {
		session.CurrentQuestion++
		session.QuestionStartedAt = s.nowFn()
	}
	return progressOf(session), nil
}

// EndTest computes the finished test's results and clears the session.
// The session survives a results failure so the client can retry.
func (s *TestSessionService) EndTest(ctx context.Context, userID string) (*model.TestReview, error) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNoActiveSession
	}

	results, err := s.results.ComputeTestResults(ctx, session.TestID)
	if err != nil {
		return nil, err
	}

	review := &model.TestReview{
		Results:   results,
		Questions: session.Questions,
		Answers:   session.Answers,
	}

	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()

	s.results.InvalidateUserStats(ctx, userID)

	s.log.Info().
		Str("user_id", userID).
		Str("test_id", session.TestID).
		Float64("accuracy", results.Accuracy).
		Msg("Test ended")

	return review, nil
}

// ResetTest discards the in-memory session. Safe to call with no session;
// persisted answers are untouched.
func (s *TestSessionService) ResetTest(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// progressOf snapshots a session for the client. The answer key is
// withheld until the review payload.
func progressOf(session *model.TestSession) *model.SessionProgress {
	question := session.Questions[session.CurrentQuestion]
	question.CorrectAnswer = ""

	return &model.SessionProgress{
		TestID:          session.TestID,
		Subject:         session.Subject,
		TotalQuestions:  len(session.Questions),
		CurrentQuestion: session.CurrentQuestion,
		Question:        &question,
		StartedAt:       session.StartedAt,
	}
}

// newTestID follows the TEST_<millis>_<nonce> shape the mobile client
// already expects in its local history.
func newTestID(now time.Time) string {
	return fmt.Sprintf("TEST_%d_%s", now.UnixMilli(), uuid.New().String()[:8])
}
