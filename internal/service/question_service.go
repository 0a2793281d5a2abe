package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prepmind/neetprep-backend/internal/llm"
	"github.com/prepmind/neetprep-backend/internal/model"
)

// QuestionStore persists generated questions.
type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
}

// QuestionService generates NEET-style questions with the model API and
// persists them. It is the Question Source the session engine consumes.
type QuestionService struct {
	questions QuestionStore
	chat      llm.ChatCompleter
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionStore, chat llm.ChatCompleter, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		chat:      chat,
		log:       log.With().Str("component", "question_service").Logger(),
	}
}

const questionSystemPrompt = "You are an expert NEET exam question creator. " +
	"Generate high-quality multiple-choice questions following the NEET pattern."

// rawQuestion mirrors the JSON shape requested from the model. Every field
// is optional on the wire; defaults are filled during validation.
type rawQuestion struct {
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Subject       string `json:"subject"`
	Difficulty    string `json:"difficulty"`
	Topic         string `json:"topic"`
}

// Generate asks the model for count questions, validates and default-fills
// the reply, and stores each question. Individual store failures are logged
// and skipped, so the returned slice may be shorter than count.
func (s *QuestionService) Generate(ctx context.Context, subject model.Subject, count int, difficulty model.Difficulty) ([]model.Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive", ErrInvalidRequest)
	}
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	content, err := s.chat.Complete(ctx, questionSystemPrompt, buildQuestionPrompt(subject, count, difficulty))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	parsed, err := parseQuestions(content, subject)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("parsed", len(parsed)).Msg("Questions parsed from model reply")

	stored := make([]model.Question, 0, len(parsed))
	for i := range parsed {
		if err := s.questions.Create(ctx, &parsed[i]); err != nil {
			s.log.Error().Err(err).Int("index", i).Msg("Failed to store question")
			continue
		}
		stored = append(stored, parsed[i])
	}

	if len(stored) == 0 {
		return nil, fmt.Errorf("%w: no questions could be generated", ErrProvider)
	}
	return stored, nil
}

func buildQuestionPrompt(subject model.Subject, count int, difficulty model.Difficulty) string {
	subjectInfo := string(subject)
	if subject == model.SubjectMixed {
		subjectInfo = "Mix of Physics, Chemistry, and Biology"
	}

	return fmt.Sprintf(`Generate %d NEET-style multiple choice questions for %s at %s difficulty level.

For each question, provide:
1. Question text (clear and concise)
2. Four options (A, B, C, D)
3. Correct answer (A, B, C, or D)
4. Subject (Physics, Chemistry, or Biology)
5. Topic/chapter name

Format your response as a JSON array like this:
[
  {
    "question_text": "What is the SI unit of force?",
    "option_a": "Newton",
    "option_b": "Joule",
    "option_c": "Watt",
    "option_d": "Pascal",
    "correct_answer": "A",
    "subject": "Physics",
    "difficulty": "Medium",
    "topic": "Units and Measurements"
  }
]

Requirements:
- Questions should be NEET exam standard
- Options should be plausible and not obviously wrong
- Cover important topics from the NEET syllabus
- Ensure correct answer is accurate
- Return ONLY the JSON array, no additional text`, count, subjectInfo, difficulty)
}

// parseQuestions extracts and validates the model's question array,
// default-filling any missing fields.
func parseQuestions(content string, requestedSubject model.Subject) ([]model.Question, error) {
	arr, err := llm.ExtractJSONArray(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var raw []rawQuestion
	if err := json.Unmarshal([]byte(arr), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	questions := make([]model.Question, len(raw))
	for i, rq := range raw {
		q := model.Question{
			QuestionText:  orDefault(rq.QuestionText, fmt.Sprintf("Question %d", i+1)),
			OptionA:       orDefault(rq.OptionA, "Option A"),
			OptionB:       orDefault(rq.OptionB, "Option B"),
			OptionC:       orDefault(rq.OptionC, "Option C"),
			OptionD:       orDefault(rq.OptionD, "Option D"),
			CorrectAnswer: strings.ToUpper(orDefault(rq.CorrectAnswer, "A")),
			Subject:       model.Subject(orDefault(rq.Subject, string(requestedSubject))),
			Difficulty:    model.Difficulty(orDefault(rq.Difficulty, string(model.DifficultyMedium))),
		}
		if rq.Topic != "" {
			topic := rq.Topic
			q.Topic = &topic
		}
		questions[i] = q
	}
	return questions, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
