package questions

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/prepgen/backend/internal/exams"
	"github.com/prepgen/backend/internal/models"
)

// ── Attempt Scoring ─────────────────────────────────────

// Evaluate scores a test attempt against the exam's marking scheme.
// Answers are looked up by question id; a missing or nil entry counts
// as unattempted, and a malformed answer is logged and downgraded to
// unattempted rather than failing the whole attempt.
func (s *Service) Evaluate(questions []models.Question, userAnswers map[int]*string, exam string) (*models.EvaluationResult, error) {
	log.Printf("starting evaluation for %s with %d questions", exam, len(questions))

	if len(questions) == 0 {
		return nil, models.NewError(models.KindValidation, "questions list cannot be empty")
	}

	scheme := exams.Scheme(exam)

	result := &models.EvaluationResult{
		TotalQuestions:  len(questions),
		SubjectResults:  []models.SubjectResult{},
		QuestionDetails: make([]models.QuestionDetail, 0, len(questions)),
	}

	// Subject rollups keep the order subjects first appear in.
	subjectIndex := make(map[string]int)

	for _, q := range questions {
		userAnswer := userAnswers[q.ID]
		if userAnswer != nil && !answerWellFormed(q, *userAnswer) {
			log.Printf("WARN: invalid user answer for Q%d: %q", q.ID, *userAnswer)
			userAnswer = nil
		}

		subject := q.Subject
		if subject == "" {
			subject = "Unknown"
		}
		idx, ok := subjectIndex[subject]
		if !ok {
			idx = len(result.SubjectResults)
			subjectIndex[subject] = idx
			result.SubjectResults = append(result.SubjectResults, models.SubjectResult{Subject: subject})
		}
		stats := &result.SubjectResults[idx]

		var marks float64
		var isCorrect bool
		switch {
		case userAnswer == nil:
			marks = scheme.Unattempted
			result.Unattempted++
			stats.Unattempted++
		case answerMatches(q, *userAnswer):
			marks = scheme.Correct
			isCorrect = true
			result.PositiveMarks += marks
			result.Correct++
			stats.Correct++
			stats.Attempted++
		default:
			marks = scheme.Wrong
			result.NegativeMarks += -marks
			result.Wrong++
			stats.Wrong++
			stats.Attempted++
		}

		result.TotalMarks += marks
		stats.MarksObtained += marks
		stats.MaxMarks += scheme.Correct
		stats.TotalQuestions++

		result.QuestionDetails = append(result.QuestionDetails, models.QuestionDetail{
			ID:            q.ID,
			Subject:       subject,
			Question:      q.Question,
			YourAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer(),
			IsCorrect:     isCorrect,
			MarksObtained: marks,
			Solution:      q.Solution,
		})
	}

	result.Attempted = result.Correct + result.Wrong
	if result.Attempted > 0 {
		result.Accuracy = models.Round2(float64(result.Correct) / float64(result.Attempted) * 100)
	}
	for i := range result.SubjectResults {
		result.SubjectResults[i].ComputeAccuracy()
	}

	log.Printf("evaluation complete: %.1f marks, %d/%d correct (%.1f%% accuracy)",
		result.TotalMarks, result.Correct, result.TotalQuestions, result.Accuracy)
	return result, nil
}

// answerWellFormed reports whether an answer string is even a candidate
// for the question type: an option letter for MCQs, an integer for
// numerical questions.
func answerWellFormed(q models.Question, answer string) bool {
	if q.Type == models.TypeNumerical {
		_, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		return err == nil
	}
	return models.ValidOptions[answer]
}

func answerMatches(q models.Question, answer string) bool {
	if q.Type == models.TypeNumerical {
		f, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		return err == nil && int(f) == q.CorrectInt
	}
	return answer == q.Correct
}

// ── Analytics ───────────────────────────────────────────

// CalculatePercentile returns the share of scores strictly below the
// given score, as a percentage.
func CalculatePercentile(score float64, allScores []float64) float64 {
	if len(allScores) == 0 {
		return 0
	}
	below := 0
	for _, s := range allScores {
		if s < score {
			below++
		}
	}
	return models.Round2(float64(below) / float64(len(allScores)) * 100)
}

// PerformanceInsights derives strengths, weaknesses and study
// recommendations from a scored attempt. Pure presentation: nothing
// here feeds back into scoring.
func PerformanceInsights(result *models.EvaluationResult) models.Insights {
	insights := models.Insights{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}

	switch {
	case result.Accuracy >= 80:
		insights.Strengths = append(insights.Strengths, "Excellent overall accuracy")
	case result.Accuracy >= 60:
		insights.Strengths = append(insights.Strengths, "Good overall performance")
	default:
		insights.Weaknesses = append(insights.Weaknesses, "Overall accuracy needs improvement")
	}

	for _, sr := range result.SubjectResults {
		switch {
		case sr.Accuracy >= 80:
			insights.Strengths = append(insights.Strengths,
				fmt.Sprintf("Strong performance in %s", sr.Subject))
		case sr.Accuracy < 50:
			insights.Weaknesses = append(insights.Weaknesses,
				fmt.Sprintf("Weak performance in %s", sr.Subject))
			insights.Recommendations = append(insights.Recommendations,
				fmt.Sprintf("Focus more on %s - review concepts and practice more questions", sr.Subject))
		}
	}

	attemptRate := float64(result.Attempted) / float64(result.TotalQuestions) * 100
	if attemptRate < 80 {
		insights.Recommendations = append(insights.Recommendations,
			"Try to attempt more questions - unattempted questions give 0 marks")
	}

	if result.NegativeMarks > result.PositiveMarks*0.3 {
		insights.Recommendations = append(insights.Recommendations,
			"Be more careful with answers - high negative marking detected")
	}

	return insights
}
