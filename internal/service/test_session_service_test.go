package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepmind/neetprep-backend/internal/model"
)

type fakeQuestionSource struct {
	questions []model.Question
	err       error
	calls     int
}

func (f *fakeQuestionSource) Generate(_ context.Context, _ model.Subject, count int, _ model.Difficulty) ([]model.Question, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.questions) >= count {
		return f.questions[:count], nil
	}
	return f.questions, nil
}

type fakeAnswerStore struct {
	records []model.UserResponse
	err     error
}

func (f *fakeAnswerStore) Upsert(_ context.Context, resp *model.UserResponse) error {
	if f.err != nil {
		return f.err
	}
	resp.ID = uuid.New()
	f.records = append(f.records, *resp)
	return nil
}

type fakeResultsProvider struct {
	results       *model.TestResults
	err           error
	invalidations int
}

func (f *fakeResultsProvider) ComputeTestResults(_ context.Context, testID string) (*model.TestResults, error) {
	if f.err != nil {
		return nil, f.err
	}
	res := *f.results
	res.TestID = testID
	return &res, nil
}

func (f *fakeResultsProvider) InvalidateUserStats(_ context.Context, _ string) {
	f.invalidations++
}

func makeQuestions(n int) []model.Question {
	answers := []string{"A", "B", "C", "D"}
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			ID:            uuid.New(),
			QuestionText:  "Placeholder",
			OptionA:       "1",
			OptionB:       "2",
			OptionC:       "3",
			OptionD:       "4",
			CorrectAnswer: answers[i%len(answers)],
			Subject:       model.SubjectPhysics,
			Difficulty:    model.DifficultyMedium,
		}
	}
	return questions
}

func newSessionService(source QuestionSource, answers AnswerStore, results ResultsProvider) *TestSessionService {
	return NewTestSessionService(source, answers, results, zerolog.Nop())
}

func TestStartTest_RejectsNonPositiveCount(t *testing.T) {
	source := &fakeQuestionSource{questions: makeQuestions(5)}
	svc := newSessionService(source, &fakeAnswerStore{}, &fakeResultsProvider{})

	_, err := svc.StartTest(context.Background(), "user-1", model.SubjectPhysics, 0)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Zero(t, source.calls, "question source must not be contacted")
}

func TestStartTest_ProgressWithheldAnswerKey(t *testing.T) {
	svc := newSessionService(&fakeQuestionSource{questions: makeQuestions(5)}, &fakeAnswerStore{}, &fakeResultsProvider{})

	progress, err := svc.StartTest(context.Background(), "user-1", model.SubjectPhysics, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, progress.TotalQuestions)
	assert.Equal(t, 0, progress.CurrentQuestion)
	assert.Contains(t, progress.TestID, "TEST_")
	assert.Empty(t, progress.Question.CorrectAnswer)
}

func TestStartTest_SingleQuestionSession(t *testing.T) {
	svc := newSessionService(&fakeQuestionSource{questions: makeQuestions(1)}, &fakeAnswerStore{}, &fakeResultsProvider{})

	progress, err := svc.StartTest(context.Background(), "user-1", model.SubjectBiology, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.TotalQuestions)

	// The only question is also the last one, so advancing is a no-op.
	progress, err = svc.NextQuestion("user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, progress.CurrentQuestion)
}

func TestStartTest_SourceErrorIsProviderError(t *testing.T) {
	svc := newSessionService(&fakeQuestionSource{err: errors.New("groq down")}, &fakeAnswerStore{}, &fakeResultsProvider{})

	_, err := svc.StartTest(context.Background(), "user-1", model.SubjectPhysics, 5)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestStartTest_ReplacesUnfinishedSession(t *testing.T) {
	svc := newSessionService(&fakeQuestionSource{questions: makeQuestions(5)}, &fakeAnswerStore{}, &fakeResultsProvider{})
	ctx := context.Background()

	first, err := svc.StartTest(ctx, "user-1", model.SubjectPhysics, 3)
	require.NoError(t, err)
	second, err := svc.StartTest(ctx, "user-1", model.SubjectChemistry, 5)
	require.NoError(t, err)

	assert.NotEqual(t, first.TestID, second.TestID)

	current, err := svc.Current("user-1")
	require.NoError(t, err)
	assert.Equal(t, second.TestID, current.TestID)
}

func TestCurrent_NoSession(t *testing.T) {
	svc := newSessionService(&fakeQuestionSource{}, &fakeAnswerStore{}, &fakeResultsProvider{})

	_, err := svc.Current("nobody")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSubmitAnswer_NoSession(t *testing.T) {
	svc := newSessionService(&fakeQuestionSource{}, &fakeAnswerStore{}, &fakeResultsProvider{})

	_, err := svc.SubmitAnswer(context.Background(), "nobody", "A")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSubmitAnswer_NormalizesCase(t *testing.T) {
	store := &fakeAnswerStore{}
	svc := newSessionService(&fakeQuestionSource{questions: makeQuestions(3)}, store, &fakeResultsProvider{})
	ctx := context.Background()

	_, err := svc.StartTest(ctx, "user-1", model.SubjectPhysics, 3)
	require.NoError(t, err)

	// First question's answer key is A.
	outcome, err := svc.SubmitAnswer(ctx, "user-1", "a")
	require.NoError(t, err)

	assert.True(t, outcome.IsCorrect)
	assert.Equal(t, "A", outcome.SelectedAnswer)
	assert.Equal(t, "A", outcome.CorrectAnswer)
	require.Len(t, store.records, 1)
	assert.Equal(t, "A", store.records[0].SelectedAnswer)
}

func TestSubmitAnswer_StoreFailureKeepsSession(t *testing.T) {
	store := &fakeAnswerStore{err: errors.New("db down")}
	provider := &fakeResultsProvider{}
	svc := newSessionService(&fakeQuestionSource{questions: makeQuestions(3)}, store, provider)
	ctx := context.Background()

	_, err := svc.StartTest(ctx, "user-1", model.SubjectPhysics, 3)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, "user-1", "A")
	assert.ErrorIs(t, err, ErrProvider)
	assert.Zero(t, provider.invalidations)

	_, err = svc.Current("user-1")
	assert.NoError(t, err)
}

func TestSessionFlow_TimingAndPositions(t *testing.T) {
	store := &fakeAnswerStore{}
	provider := &fakeResultsProvider{results: &model.TestResults{Accuracy: 66.67, Grade: "C"}}
	svc := newSessionService(&fakeQuestionSource{questions: makeQuestions(3)}, store, provider)

	start := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	now := start
	svc.nowFn = func() time.Time { return now }

	ctx := context.Background()
	_, err := svc.StartTest(ctx, "user-1", model.SubjectPhysics, 3)
	require.NoError(t, err)

	// Question 1: 20 seconds, correct (key A).
	now = start.Add(20 * time.Second)
	outcome, err := svc.SubmitAnswer(ctx, "user-1", "A")
	require.NoError(t, err)
	assert.True(t, outcome.IsCorrect)
	assert.Equal(t, 20, outcome.TimeTaken)

	_, err = svc.NextQuestion("user-1")
	require.NoError(t, err)

	// Question 2: 40 seconds, incorrect (key B, answered D).
	now = start.Add(60 * time.Second)
	outcome, err = svc.SubmitAnswer(ctx, "user-1", "D")
	require.NoError(t, err)
	assert.False(t, outcome.IsCorrect)
	assert.Equal(t, "B", outcome.CorrectAnswer)
	assert.Equal(t, 40, outcome.TimeTaken)

	_, err = svc.NextQuestion("user-1")
	require.NoError(t, err)

	// Question 3: 30 seconds, correct (key C).
	now = start.Add(90 * time.Second)
	outcome, err = svc.SubmitAnswer(ctx, "user-1", "C")
	require.NoError(t, err)
	assert.True(t, outcome.IsCorrect)
	assert.Equal(t, 30, outcome.TimeTaken)

	require.Len(t, store.records, 3)
	for i, rec := range store.records {
		assert.Equal(t, i+1, rec.QuestionPosition)
		assert.Equal(t, "user-1", rec.UserID)
	}
	assert.InDelta(t, 1.5, store.records[2].TestDurationSoFar, 1e-9)

	review, err := svc.EndTest(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 66.67, review.Results.Accuracy)
	assert.Len(t, review.Questions, 3)
	assert.Equal(t, map[int]string{0: "A", 1: "D", 2: "C"}, review.Answers)

	// 3 submits + 1 end.
	assert.Equal(t, 4, provider.invalidations)

	_, err = svc.Current("user-1")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestEndTest_ResultsFailureKeepsSession(t *testing.T) {
	provider := &fakeResultsProvider{err: errors.New("db down")}
	svc := newSessionService(&fakeQuestionSource{questions: makeQuestions(3)}, &fakeAnswerStore{}, provider)
	ctx := context.Background()

	_, err := svc.StartTest(ctx, "user-1", model.SubjectPhysics, 3)
	require.NoError(t, err)

	_, err = svc.EndTest(ctx, "user-1")
	require.Error(t, err)

	// The client can retry ending the same session.
	_, err = svc.Current("user-1")
	assert.NoError(t, err)
}

func TestResetTest_DiscardsSession(t *testing.T) {
	svc := newSessionService(&fakeQuestionSource{questions: makeQuestions(3)}, &fakeAnswerStore{}, &fakeResultsProvider{})
	ctx := context.Background()

	_, err := svc.StartTest(ctx, "user-1", model.SubjectPhysics, 3)
	require.NoError(t, err)

	svc.ResetTest("user-1")
	_, err = svc.Current("user-1")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	// Resetting with no session is a no-op.
	svc.ResetTest("user-1")
}
