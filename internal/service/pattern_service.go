package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prepmind/neetprep-backend/internal/config"
	"github.com/prepmind/neetprep-backend/internal/llm"
	"github.com/prepmind/neetprep-backend/internal/model"
)

const analysisLockTTL = 2 * time.Minute

// ResponseHistory is the read side of the response store the pattern
// engine depends on.
type ResponseHistory interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]model.UserResponse, error)
}

// QuestionLookup resolves question ids to their full records for prompt
// context.
type QuestionLookup interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Question, error)
}

// PatternStore persists and reads detected patterns.
type PatternStore interface {
	Create(ctx context.Context, p *model.Pattern) error
	ListByUser(ctx context.Context, userID string) ([]model.Pattern, error)
	Resolve(ctx context.Context, id uuid.UUID, userID string) error
}

// PatternService runs the mistake-pattern analysis: historical responses
// in, validated Pattern records out, with one model call in between.
type PatternService struct {
	responses ResponseHistory
	questions QuestionLookup
	patterns  PatternStore
	chat      llm.ChatCompleter
	rdb       *redis.Client
	log       zerolog.Logger

	minRecords int
	lookback   int
	sampleSize int

	nowFn func() time.Time
}

// NewPatternService creates a new PatternService. rdb may be nil, in which
// case concurrent analyses for one user are not fenced.
func NewPatternService(
	responses ResponseHistory,
	questions QuestionLookup,
	patterns PatternStore,
	chat llm.ChatCompleter,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *PatternService {
	return &PatternService{
		responses:  responses,
		questions:  questions,
		patterns:   patterns,
		chat:       chat,
		rdb:        rdb,
		log:        log.With().Str("component", "pattern_service").Logger(),
		minRecords: cfg.AnalysisMinRecords,
		lookback:   cfg.AnalysisLookbackLimit,
		sampleSize: cfg.AnalysisSampleSize,
		nowFn:      time.Now,
	}
}

const analysisSystemPrompt = "You are an expert NEET exam coach analyzing student mistake patterns. " +
	"Identify behavioral patterns in errors and provide actionable recommendations."

// Analyze reads the user's recent history, asks the model to classify
// mistake patterns and persists the validated result. Persistence is
// best-effort per pattern: a single failed insert is logged and skipped,
// so the returned slice may be shorter than what the model produced.
func (s *PatternService) Analyze(ctx context.Context, userID string) ([]model.Pattern, error) {
	if s.rdb != nil {
		acquired, err := s.rdb.SetNX(ctx, analysisLockKey(userID), 1, analysisLockTTL).Result()
		if err != nil {
			s.log.Warn().Err(err).Msg("Analysis lock unavailable, proceeding unfenced")
		} else if !acquired {
			return nil, ErrAnalysisInProgress
		} else {
			defer s.rdb.Del(context.WithoutCancel(ctx), analysisLockKey(userID))
		}
	}

	responses, err := s.responses.ListByUser(ctx, userID, s.lookback)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch responses: %v", ErrProvider, err)
	}
	if len(responses) < s.minRecords {
		return nil, fmt.Errorf("%w: complete at least %d questions", ErrInsufficientData, s.minRecords)
	}

	questions, err := s.fetchQuestions(ctx, responses)
	if err != nil {
		// Missing question context degrades the prompt but does not
		// block the analysis.
		s.log.Warn().Err(err).Msg("Question context fetch failed")
		questions = map[uuid.UUID]model.Question{}
	}

	data := prepareAnalysisData(responses, questions)

	content, err := s.chat.Complete(ctx, analysisSystemPrompt, buildAnalysisPrompt(data, s.sampleSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	parsed, err := parsePatterns(content)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("detected", len(parsed)).Str("user_id", userID).Msg("Model detected patterns")

	now := s.nowFn()
	stored := make([]model.Pattern, 0, len(parsed))
	for i := range parsed {
		parsed[i].UserID = userID
		parsed[i].DetectedAt = now
		parsed[i].IsResolved = false

		if err := s.patterns.Create(ctx, &parsed[i]); err != nil {
			s.log.Error().Err(err).Str("title", parsed[i].Title).Msg("Failed to store pattern")
			continue
		}
		stored = append(stored, parsed[i])
	}
	return stored, nil
}

// GetUserPatterns lists the user's unresolved patterns, newest first.
func (s *PatternService) GetUserPatterns(ctx context.Context, userID string) ([]model.Pattern, error) {
	patterns, err := s.patterns.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list patterns: %v", ErrProvider, err)
	}
	return patterns, nil
}

// ResolvePattern flips a pattern's resolved flag.
func (s *PatternService) ResolvePattern(ctx context.Context, userID string, patternID uuid.UUID) error {
	return s.patterns.Resolve(ctx, patternID, userID)
}

func (s *PatternService) fetchQuestions(ctx context.Context, responses []model.UserResponse) (map[uuid.UUID]model.Question, error) {
	seen := make(map[uuid.UUID]struct{}, len(responses))
	ids := make([]uuid.UUID, 0, len(responses))
	for _, r := range responses {
		if _, ok := seen[r.QuestionID]; ok {
			continue
		}
		seen[r.QuestionID] = struct{}{}
		ids = append(ids, r.QuestionID)
	}
	return s.questions.GetByIDs(ctx, ids)
}

func analysisLockKey(userID string) string {
	return "patterns:analyzing:" + userID
}

// ─── Data shaping ───────────────────────────────────────────────────────────

type analysisStats struct {
	TotalQuestions     int
	TotalIncorrect     int
	Accuracy           float64
	AvgTimePerQuestion float64
}

type subjectMistakes struct {
	Subject   model.Subject
	Total     int
	Incorrect int
}

type incorrectAnswer struct {
	QuestionText string
	Subject      model.Subject
	Selected     string
	Correct      string
	TimeTaken    int
	Position     int
	Topic        string
}

type analysisData struct {
	Stats            analysisStats
	SubjectStats     []subjectMistakes
	IncorrectAnswers []incorrectAnswer
}

// prepareAnalysisData turns raw history into the statistic block and the
// incorrect-answer evidence handed to the model.
func prepareAnalysisData(responses []model.UserResponse, questions map[uuid.UUID]model.Question) analysisData {
	var data analysisData

	totalTime := 0
	bySubject := make(map[model.Subject]*subjectMistakes)
	subjectOrder := []model.Subject{}

	for _, r := range responses {
		totalTime += r.TimeTaken

		if r.Subject != "" {
			sm, ok := bySubject[r.Subject]
			if !ok {
				sm = &subjectMistakes{Subject: r.Subject}
				bySubject[r.Subject] = sm
				subjectOrder = append(subjectOrder, r.Subject)
			}
			sm.Total++
			if !r.IsCorrect {
				sm.Incorrect++
			}
		}

		if r.IsCorrect {
			continue
		}

		ia := incorrectAnswer{
			QuestionText: "Question not found",
			Subject:      r.Subject,
			Selected:     r.SelectedAnswer,
			Correct:      "Unknown",
			TimeTaken:    r.TimeTaken,
			Position:     r.QuestionPosition,
			Topic:        "Unknown",
		}
		if q, ok := questions[r.QuestionID]; ok {
			ia.QuestionText = q.QuestionText
			ia.Correct = q.CorrectAnswer
			if q.Topic != nil {
				ia.Topic = *q.Topic
			}
		}
		data.IncorrectAnswers = append(data.IncorrectAnswers, ia)
	}

	total := len(responses)
	incorrect := len(data.IncorrectAnswers)
	data.Stats = analysisStats{
		TotalQuestions:     total,
		TotalIncorrect:     incorrect,
		Accuracy:           float64(total-incorrect) / float64(total) * 100,
		AvgTimePerQuestion: float64(totalTime) / float64(total),
	}

	for _, subject := range subjectOrder {
		data.SubjectStats = append(data.SubjectStats, *bySubject[subject])
	}
	return data
}

func buildAnalysisPrompt(data analysisData, sampleSize int) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Analyze this NEET student's test performance and identify mistake patterns:

**Overall Statistics:**
- Total Questions: %d
- Incorrect Answers: %d
- Accuracy: %.1f%%
- Average Time per Question: %.1f seconds

**Subject Performance:**
`, data.Stats.TotalQuestions, data.Stats.TotalIncorrect, data.Stats.Accuracy, data.Stats.AvgTimePerQuestion)

	for _, sm := range data.SubjectStats {
		fmt.Fprintf(&b, "- %s: %d/%d incorrect (%.1f%%)\n",
			sm.Subject, sm.Incorrect, sm.Total, float64(sm.Incorrect)/float64(sm.Total)*100)
	}

	b.WriteString("\n**Incorrect Answers (Sample):**\n")
	sample := data.IncorrectAnswers
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	for i, ans := range sample {
		fmt.Fprintf(&b, `%d. [%s] %s...
   - Selected: %s, Correct: %s
   - Time: %ds, Position: %d, Topic: %s

`, i+1, ans.Subject, truncate(ans.QuestionText, 100), ans.Selected, ans.Correct, ans.TimeTaken, ans.Position, ans.Topic)
	}

	b.WriteString(`**Task:**
Identify 2-4 behavioral mistake patterns (NOT content gaps). Look for:
- Time management issues (rushing, spending too long)
- Question position patterns (mistakes at start/end of test)
- Subject-specific behavioral patterns
- Consistency issues across tests

For each pattern, provide:
1. Pattern type (e.g., "rushing", "fatigue", "confusion")
2. Title (concise, student-friendly)
3. Description (2-3 sentences explaining the pattern)
4. Confidence score (0-100, based on evidence strength)
5. Evidence (3-5 specific examples from the data)
6. Recommendation (actionable advice to fix the pattern)
7. Subject distribution (if pattern affects specific subjects)

Format as JSON array:
[
  {
    "pattern_type": "rushing",
    "title": "Rushing Through Multi-Step Problems",
    "description": "You tend to answer complex questions too quickly, leading to careless mistakes.",
    "confidence": 85,
    "evidence": [
      "Answered 3 mechanics questions in under 30 seconds each",
      "Accuracy drops to 40% when time taken < 35 seconds"
    ],
    "recommendation": "Slow down on multi-step problems and write down intermediate steps.",
    "subject_distribution": {
      "Physics": 5,
      "Chemistry": 2
    }
  }
]

Return ONLY the JSON array, no additional text.`)

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// rawPattern mirrors the JSON shape requested from the model. Confidence
// is a pointer so a missing field is distinguishable from zero.
type rawPattern struct {
	PatternType         string         `json:"pattern_type"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Confidence          *float64       `json:"confidence"`
	Evidence            []string       `json:"evidence"`
	Recommendation      string         `json:"recommendation"`
	SubjectDistribution map[string]int `json:"subject_distribution"`
}

// parsePatterns extracts the model's pattern array and default-fills
// malformed entries: unknown type, confidence 50 when missing and clamped
// into [0,100], empty evidence list.
func parsePatterns(content string) ([]model.Pattern, error) {
	arr, err := llm.ExtractJSONArray(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var raw []rawPattern
	if err := json.Unmarshal([]byte(arr), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	patterns := make([]model.Pattern, len(raw))
	for i, rp := range raw {
		confidence := 50
		if rp.Confidence != nil {
			confidence = clamp(int(*rp.Confidence), 0, 100)
		}

		evidence := rp.Evidence
		if evidence == nil {
			evidence = []string{}
		}

		patterns[i] = model.Pattern{
			PatternType:         orDefault(rp.PatternType, "unknown"),
			Title:               orDefault(rp.Title, "Untitled Pattern"),
			Description:         orDefault(rp.Description, "No description provided"),
			Confidence:          confidence,
			Evidence:            evidence,
			Recommendation:      orDefault(rp.Recommendation, "No recommendation provided"),
			SubjectDistribution: rp.SubjectDistribution,
		}
	}
	return patterns, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
