package generator

import (
	"fmt"
	"strings"

	"github.com/prepgen/backend/internal/models"
)

// Structural bounds for question records.
const (
	minQuestionLen = 10
	maxQuestionLen = 1000
	minOptionLen   = 1
	maxOptionLen   = 500
	minSolutionLen = 10
)

// ValidateQuestion checks a record against the structural rules and
// returns every violation found; checks accumulate rather than
// short-circuit. MCQ and numerical records are validated by distinct
// rule sets: numerical records carry no options and their answer is an
// integer instead of a letter.
func ValidateQuestion(q models.Question) (bool, []string) {
	var errs []string

	if q.Subject == "" {
		errs = append(errs, "missing required field: subject")
	}

	switch {
	case q.Question == "":
		errs = append(errs, "missing required field: question")
	case len(q.Question) < minQuestionLen:
		errs = append(errs, fmt.Sprintf("question too short (min %d chars)", minQuestionLen))
	case len(q.Question) > maxQuestionLen:
		errs = append(errs, fmt.Sprintf("question too long (max %d chars)", maxQuestionLen))
	}

	switch {
	case q.Solution == "":
		errs = append(errs, "missing required field: solution")
	case len(q.Solution) < minSolutionLen:
		errs = append(errs, fmt.Sprintf("solution too short (min %d chars)", minSolutionLen))
	}

	if q.Type == models.TypeNumerical {
		// Numerical rule set: the integer answer is enforced by the
		// record type itself and options must be absent.
		if len(q.Options) > 0 {
			errs = append(errs, "numerical question must not have options")
		}
	} else {
		errs = append(errs, validateMCQ(q)...)
	}

	return len(errs) == 0, errs
}

func validateMCQ(q models.Question) []string {
	var errs []string

	if q.Options == nil {
		errs = append(errs, "missing required field: options")
	} else {
		var missing []string
		for _, key := range models.OptionKeys {
			if _, ok := q.Options[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			errs = append(errs, "missing options: "+strings.Join(missing, ", "))
		}

		for key, text := range q.Options {
			if !models.ValidOptions[key] {
				errs = append(errs, "invalid option key: "+key)
			}
			if len(text) < minOptionLen {
				errs = append(errs, fmt.Sprintf("option %s too short", key))
			} else if len(text) > maxOptionLen {
				errs = append(errs, fmt.Sprintf("option %s too long (max %d chars)", key, maxOptionLen))
			}
		}
	}

	switch {
	case q.Correct == "":
		errs = append(errs, "missing required field: correct")
	case !models.ValidOptions[q.Correct]:
		errs = append(errs, fmt.Sprintf("invalid correct answer: %s (must be one of A, B, C, D)", q.Correct))
	}

	return errs
}

// MustValidateQuestion is the raising variant of ValidateQuestion.
func MustValidateQuestion(q models.Question) error {
	ok, errs := ValidateQuestion(q)
	if ok {
		return nil
	}
	return models.NewError(models.KindValidation,
		"question validation failed: %s", strings.Join(errs, "; ")).
		WithDetail("question_id", q.ID).
		WithDetail("errors", errs)
}

// ValidateBatch validates every record and returns the valid/invalid
// counts. When minCount > 0 and fewer records pass, it returns an error
// alongside the counts.
func ValidateBatch(questions []models.Question, minCount int) (int, int, error) {
	valid, invalid := 0, 0
	for _, q := range questions {
		if ok, _ := ValidateQuestion(q); ok {
			valid++
		} else {
			invalid++
		}
	}

	if minCount > 0 && valid < minCount {
		return valid, invalid, models.NewError(models.KindValidation,
			"insufficient valid questions: %d/%d valid, need at least %d",
			valid, len(questions), minCount).
			WithDetail("valid", valid).
			WithDetail("min_count", minCount)
	}
	return valid, invalid, nil
}
