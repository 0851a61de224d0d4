package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type QuestionType string

const (
	TypeMCQ       QuestionType = "mcq"
	TypeNumerical QuestionType = "numerical"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// OptionKeys are the choice labels every MCQ must carry, in serving order.
var OptionKeys = []string{"A", "B", "C", "D"}

var ValidOptions = map[string]bool{"A": true, "B": true, "C": true, "D": true}

// ── Core Structs ───────────────────────────────────────

// Question is the unit of generated content. The parser produces bare
// records with a batch-local id; the generation service rewrites the id
// and attaches subject, chapter and difficulty before anything else sees
// the record.
type Question struct {
	ID         int               `json:"id"`
	Subject    string            `json:"subject"`
	Type       QuestionType      `json:"type"`
	Question   string            `json:"question"`
	Options    map[string]string `json:"options,omitempty"`
	Correct    string            `json:"-"`
	CorrectInt int               `json:"-"`
	Solution   string            `json:"solution"`
	Chapter    string            `json:"chapter,omitempty"`
	Difficulty Difficulty        `json:"difficulty,omitempty"`
}

// CorrectAnswer returns the answer key as it appears on the wire: a
// letter for MCQs, an integer for numerical questions.
func (q *Question) CorrectAnswer() any {
	if q.Type == TypeNumerical {
		return q.CorrectInt
	}
	return q.Correct
}

// MarshalJSON emits "correct" as a letter for MCQs and as an integer for
// numerical questions. Downstream consumers depend on that key name.
func (q Question) MarshalJSON() ([]byte, error) {
	type alias Question
	return json.Marshal(struct {
		alias
		Correct any `json:"correct"`
	}{alias: alias(q), Correct: q.CorrectAnswer()})
}

func (q *Question) UnmarshalJSON(data []byte) error {
	type alias Question
	aux := struct {
		*alias
		Correct json.RawMessage `json:"correct"`
	}{alias: (*alias)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Correct) == 0 || string(aux.Correct) == "null" {
		return nil
	}
	var letter string
	if err := json.Unmarshal(aux.Correct, &letter); err == nil {
		q.Correct = letter
		return nil
	}
	n, err := strconv.ParseFloat(string(aux.Correct), 64)
	if err != nil {
		return fmt.Errorf("correct must be a letter or an integer, got %s", aux.Correct)
	}
	q.CorrectInt = int(n)
	if q.Type == "" {
		q.Type = TypeNumerical
	}
	return nil
}

// SubjectConfig is the per-subject generation request. An empty chapter
// list means "use the full syllabus for this subject".
type SubjectConfig struct {
	Chapters     []string   `json:"chapters"`
	NumQuestions int        `json:"num_questions"`
	Difficulty   Difficulty `json:"difficulty"`
}

// MarkingScheme holds the point values applied per question outcome.
// Fields are floats: UPSC-style exams use fractional penalties.
type MarkingScheme struct {
	Correct     float64 `json:"correct"`
	Wrong       float64 `json:"wrong"`
	Unattempted float64 `json:"unattempted"`
}

// ── Request Types ─────────────────────────────────────

type GenerateRequest struct {
	Exam        string                   `json:"exam"`
	SubjectData map[string]SubjectConfig `json:"subject_data"`
}

type EvaluateRequest struct {
	Questions   []Question      `json:"questions"`
	UserAnswers map[int]*string `json:"user_answers"`
	Exam        string          `json:"exam"`
}

// ── Response Types ────────────────────────────────────

type GenerateResponse struct {
	Questions []Question            `json:"questions"`
	BySubject map[string][]Question `json:"by_subject"`
	Total     int                   `json:"total"`
}
