package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepmind/neetprep-backend/internal/model"
)

type fakeChat struct {
	reply string
	err   error
	calls int
	// lastUser captures the user prompt for assertions.
	lastUser string
}

func (f *fakeChat) Complete(_ context.Context, _ string, user string) (string, error) {
	f.calls++
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeQuestionStore struct {
	created  []model.Question
	failAt   map[int]bool
	attempts int
}

func (f *fakeQuestionStore) Create(_ context.Context, q *model.Question) error {
	attempt := f.attempts
	f.attempts++
	if f.failAt[attempt] {
		return errors.New("insert failed")
	}
	f.created = append(f.created, *q)
	return nil
}

func newQuestionService(store QuestionStore, chat *fakeChat) *QuestionService {
	return NewQuestionService(store, chat, zerolog.Nop())
}

func TestGenerate_RejectsNonPositiveCount(t *testing.T) {
	chat := &fakeChat{}
	svc := newQuestionService(&fakeQuestionStore{}, chat)

	_, err := svc.Generate(context.Background(), model.SubjectPhysics, 0, model.DifficultyMedium)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Zero(t, chat.calls)
}

func TestGenerate_ParsesCompleteReply(t *testing.T) {
	chat := &fakeChat{reply: `[
		{"question_text": "What is the SI unit of force?", "option_a": "Newton", "option_b": "Joule",
		 "option_c": "Watt", "option_d": "Pascal", "correct_answer": "a",
		 "subject": "Physics", "difficulty": "Easy", "topic": "Units"}
	]`}
	store := &fakeQuestionStore{}
	svc := newQuestionService(store, chat)

	questions, err := svc.Generate(context.Background(), model.SubjectPhysics, 1, model.DifficultyMedium)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, "What is the SI unit of force?", q.QuestionText)
	assert.Equal(t, "A", q.CorrectAnswer, "answer letter is uppercased")
	assert.Equal(t, model.SubjectPhysics, q.Subject)
	assert.Equal(t, model.Difficulty("Easy"), q.Difficulty)
	require.NotNil(t, q.Topic)
	assert.Equal(t, "Units", *q.Topic)
	assert.Len(t, store.created, 1)
}

func TestGenerate_DefaultFillsMissingFields(t *testing.T) {
	chat := &fakeChat{reply: `[{}, {"question_text": "Real question"}]`}
	svc := newQuestionService(&fakeQuestionStore{}, chat)

	questions, err := svc.Generate(context.Background(), model.SubjectChemistry, 2, model.DifficultyMedium)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	first := questions[0]
	assert.Equal(t, "Question 1", first.QuestionText)
	assert.Equal(t, "Option A", first.OptionA)
	assert.Equal(t, "Option D", first.OptionD)
	assert.Equal(t, "A", first.CorrectAnswer)
	assert.Equal(t, model.SubjectChemistry, first.Subject, "subject falls back to the requested one")
	assert.Equal(t, model.DifficultyMedium, first.Difficulty)
	assert.Nil(t, first.Topic)

	assert.Equal(t, "Real question", questions[1].QuestionText)
}

func TestGenerate_MixedSubjectPrompt(t *testing.T) {
	chat := &fakeChat{reply: `[{"subject": "Biology"}]`}
	svc := newQuestionService(&fakeQuestionStore{}, chat)

	questions, err := svc.Generate(context.Background(), model.SubjectMixed, 1, model.DifficultyMedium)
	require.NoError(t, err)

	assert.Contains(t, chat.lastUser, "Mix of Physics, Chemistry, and Biology")
	assert.Equal(t, model.SubjectBiology, questions[0].Subject)
}

func TestGenerate_ChatFailureIsProviderError(t *testing.T) {
	chat := &fakeChat{err: errors.New("rate limited")}
	svc := newQuestionService(&fakeQuestionStore{}, chat)

	_, err := svc.Generate(context.Background(), model.SubjectPhysics, 5, model.DifficultyMedium)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestGenerate_NonArrayReplyIsParseError(t *testing.T) {
	chat := &fakeChat{reply: "Sorry, I cannot generate questions right now."}
	svc := newQuestionService(&fakeQuestionStore{}, chat)

	_, err := svc.Generate(context.Background(), model.SubjectPhysics, 5, model.DifficultyMedium)
	assert.ErrorIs(t, err, ErrParse)
}

func TestGenerate_ProseWrappedArrayStillParses(t *testing.T) {
	chat := &fakeChat{reply: "Here are your questions:\n[{\"question_text\": \"Q\"}]\nGood luck!"}
	svc := newQuestionService(&fakeQuestionStore{}, chat)

	questions, err := svc.Generate(context.Background(), model.SubjectPhysics, 1, model.DifficultyMedium)
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestGenerate_StoreFailuresShrinkResult(t *testing.T) {
	chat := &fakeChat{reply: `[{"question_text": "One"}, {"question_text": "Two"}, {"question_text": "Three"}]`}
	store := &fakeQuestionStore{failAt: map[int]bool{1: true}}
	svc := newQuestionService(store, chat)

	questions, err := svc.Generate(context.Background(), model.SubjectPhysics, 3, model.DifficultyMedium)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "One", questions[0].QuestionText)
	assert.Equal(t, "Three", questions[1].QuestionText)
}

func TestGenerate_AllStoresFailedIsProviderError(t *testing.T) {
	chat := &fakeChat{reply: `[{"question_text": "One"}]`}
	store := &fakeQuestionStore{failAt: map[int]bool{0: true}}
	svc := newQuestionService(store, chat)

	_, err := svc.Generate(context.Background(), model.SubjectPhysics, 1, model.DifficultyMedium)
	assert.ErrorIs(t, err, ErrProvider)
}
