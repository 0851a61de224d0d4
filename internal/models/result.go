package models

import "math"

// Round2 rounds to two decimal places, the precision used for accuracy
// percentages and percentiles throughout the API.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SubjectResult is the per-subject scoring rollup. Accuracy is derived
// from the counts and must be recomputed whenever they change; use
// ComputeAccuracy rather than writing the field directly.
type SubjectResult struct {
	Subject        string  `json:"subject"`
	TotalQuestions int     `json:"total_questions"`
	Attempted      int     `json:"attempted"`
	Correct        int     `json:"correct"`
	Wrong          int     `json:"wrong"`
	Unattempted    int     `json:"unattempted"`
	MarksObtained  float64 `json:"marks_obtained"`
	MaxMarks       float64 `json:"max_marks"`
	Accuracy       float64 `json:"accuracy"`
}

// ComputeAccuracy refreshes the derived accuracy field: correct answers
// over attempted, as a percentage, 0 when nothing was attempted.
func (r *SubjectResult) ComputeAccuracy() {
	if r.Attempted == 0 {
		r.Accuracy = 0
		return
	}
	r.Accuracy = Round2(float64(r.Correct) / float64(r.Attempted) * 100)
}

// QuestionDetail records the outcome of a single question in an attempt.
// YourAnswer is nil for unattempted questions; CorrectAnswer is a letter
// for MCQs and an integer for numerical questions.
type QuestionDetail struct {
	ID            int     `json:"id"`
	Subject       string  `json:"subject"`
	Question      string  `json:"question"`
	YourAnswer    *string `json:"your_answer"`
	CorrectAnswer any     `json:"correct_answer"`
	IsCorrect     bool    `json:"is_correct"`
	MarksObtained float64 `json:"marks_obtained"`
	Solution      string  `json:"solution"`
}

// EvaluationResult is the complete scored attempt.
// Invariants: TotalMarks == PositiveMarks - NegativeMarks (to float
// rounding) and Attempted + Unattempted == TotalQuestions.
type EvaluationResult struct {
	TotalMarks      float64          `json:"total_marks"`
	PositiveMarks   float64          `json:"positive_marks"`
	NegativeMarks   float64          `json:"negative_marks"`
	TotalQuestions  int              `json:"total_questions"`
	Attempted       int              `json:"attempted"`
	Correct         int              `json:"correct"`
	Wrong           int              `json:"wrong"`
	Unattempted     int              `json:"unattempted"`
	Accuracy        float64          `json:"accuracy"`
	SubjectResults  []SubjectResult  `json:"subject_results"`
	QuestionDetails []QuestionDetail `json:"question_details"`
}

// Insights is presentation-level commentary computed purely from an
// EvaluationResult; it introduces no new scoring.
type Insights struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}
