// Package stats computes test summaries from response records. Everything
// here is pure: records in, numbers out, no I/O.
package stats

import (
	"errors"
	"math"

	"github.com/prepmind/neetprep-backend/internal/model"
)

// ErrNoRecords is returned when a summary is requested over zero records.
// Callers must guarantee at least one persisted answer; an empty result
// set is a terminal error, never a zero-filled summary.
var ErrNoRecords = errors.New("no responses found for this test")

// Summarize aggregates one test's response records into a TestResults.
// Records with a subject outside the three fixed ones count toward the
// totals but are skipped in the per-subject breakdown.
func Summarize(records []model.UserResponse) (*model.TestResults, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	total := len(records)
	correct := 0
	totalTime := 0

	breakdown := make(map[model.Subject]*model.SubjectScore, len(model.Subjects))
	for _, s := range model.Subjects {
		breakdown[s] = &model.SubjectScore{}
	}

	fastest := records[0]
	slowest := records[0]

	for _, r := range records {
		if r.IsCorrect {
			correct++
		}
		totalTime += r.TimeTaken

		if r.TimeTaken < fastest.TimeTaken {
			fastest = r
		}
		if r.TimeTaken > slowest.TimeTaken {
			slowest = r
		}

		if score, ok := breakdown[r.Subject]; ok {
			score.Total++
			if r.IsCorrect {
				score.Correct++
			}
		}
	}

	for _, score := range breakdown {
		if score.Total > 0 {
			score.Accuracy = round2(float64(score.Correct) / float64(score.Total) * 100)
		}
	}

	accuracy := round2(float64(correct) / float64(total) * 100)

	return &model.TestResults{
		TestID:             records[0].TestID,
		TotalQuestions:     total,
		CorrectAnswers:     correct,
		IncorrectAnswers:   total - correct,
		Accuracy:           accuracy,
		TotalTime:          totalTime,
		AvgTimePerQuestion: round2(float64(totalTime) / float64(total)),
		Grade:              Grade(accuracy),
		SubjectBreakdown:   breakdown,
		Performance: model.Performance{
			FastestQuestion: model.QuestionTiming{QuestionID: fastest.QuestionID, TimeTaken: fastest.TimeTaken},
			SlowestQuestion: model.QuestionTiming{QuestionID: slowest.QuestionID, TimeTaken: slowest.TimeTaken},
		},
	}, nil
}

// UnknownSubjectCount reports how many records carry a subject outside the
// three fixed ones. Such records are invisible in the breakdown, so
// callers log the count to make the data loss observable.
func UnknownSubjectCount(records []model.UserResponse) int {
	n := 0
	for _, r := range records {
		if !r.Subject.IsConcrete() {
			n++
		}
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
