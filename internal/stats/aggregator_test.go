package stats

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepmind/neetprep-backend/internal/model"
)

func record(subject model.Subject, correct bool, timeTaken int) model.UserResponse {
	return model.UserResponse{
		ID:         uuid.New(),
		QuestionID: uuid.New(),
		TestID:     "TEST_1",
		Subject:    subject,
		IsCorrect:  correct,
		TimeTaken:  timeTaken,
	}
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestSummarize_ThreeQuestionPhysicsTest(t *testing.T) {
	records := []model.UserResponse{
		record(model.SubjectPhysics, true, 20),
		record(model.SubjectPhysics, false, 40),
		record(model.SubjectPhysics, true, 30),
	}

	res, err := Summarize(records)
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalQuestions)
	assert.Equal(t, 2, res.CorrectAnswers)
	assert.Equal(t, 1, res.IncorrectAnswers)
	assert.Equal(t, 66.67, res.Accuracy)
	assert.Equal(t, 90, res.TotalTime)
	assert.Equal(t, 30.00, res.AvgTimePerQuestion)

	physics := res.SubjectBreakdown[model.SubjectPhysics]
	assert.Equal(t, 2, physics.Correct)
	assert.Equal(t, 3, physics.Total)
	assert.Equal(t, 66.67, physics.Accuracy)

	// The other two subjects are present and zeroed, not missing.
	assert.Equal(t, &model.SubjectScore{}, res.SubjectBreakdown[model.SubjectChemistry])
	assert.Equal(t, &model.SubjectScore{}, res.SubjectBreakdown[model.SubjectBiology])
}

func TestSummarize_AccuracyBounds(t *testing.T) {
	allWrong := []model.UserResponse{
		record(model.SubjectBiology, false, 10),
		record(model.SubjectBiology, false, 15),
	}
	res, err := Summarize(allWrong)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Accuracy)

	allRight := []model.UserResponse{record(model.SubjectBiology, true, 10)}
	res, err = Summarize(allRight)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Accuracy)
}

func TestSummarize_UnknownSubjectCountsTowardTotalsOnly(t *testing.T) {
	records := []model.UserResponse{
		record(model.SubjectPhysics, true, 20),
		record("Astrology", false, 40),
		record("", true, 10),
	}

	res, err := Summarize(records)
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalQuestions)
	assert.Equal(t, 2, res.CorrectAnswers)

	inBreakdown := 0
	for _, score := range res.SubjectBreakdown {
		inBreakdown += score.Total
	}
	assert.Equal(t, 1, inBreakdown)
	assert.Equal(t, 2, UnknownSubjectCount(records))
}

func TestSummarize_TimingExtremes(t *testing.T) {
	records := []model.UserResponse{
		record(model.SubjectChemistry, true, 25),
		record(model.SubjectChemistry, true, 5),
		record(model.SubjectChemistry, false, 90),
	}

	res, err := Summarize(records)
	require.NoError(t, err)
	assert.Equal(t, records[1].QuestionID, res.Performance.FastestQuestion.QuestionID)
	assert.Equal(t, 5, res.Performance.FastestQuestion.TimeTaken)
	assert.Equal(t, records[2].QuestionID, res.Performance.SlowestQuestion.QuestionID)
	assert.Equal(t, 90, res.Performance.SlowestQuestion.TimeTaken)
}

func TestSummarize_TimingTiesKeepFirstEncountered(t *testing.T) {
	records := []model.UserResponse{
		record(model.SubjectPhysics, true, 30),
		record(model.SubjectPhysics, true, 30),
		record(model.SubjectPhysics, true, 30),
	}

	res, err := Summarize(records)
	require.NoError(t, err)
	assert.Equal(t, records[0].QuestionID, res.Performance.FastestQuestion.QuestionID)
	assert.Equal(t, records[0].QuestionID, res.Performance.SlowestQuestion.QuestionID)
}

func TestSummarize_Rounding(t *testing.T) {
	// 1/3 correct → 33.333... → 33.33; avg of 10s over 3 → 3.33.
	records := []model.UserResponse{
		record(model.SubjectPhysics, true, 4),
		record(model.SubjectPhysics, false, 3),
		record(model.SubjectPhysics, false, 3),
	}

	res, err := Summarize(records)
	require.NoError(t, err)
	assert.Equal(t, 33.33, res.Accuracy)
	assert.Equal(t, 3.33, res.AvgTimePerQuestion)
}
