package exams

import "github.com/prepgen/backend/internal/models"

// defaultExam is the scheme applied when an exam has no entry of its own.
const defaultExam = "JEE"

var markingSchemes = map[string]models.MarkingScheme{
	"JEE":  {Correct: 4, Wrong: -1, Unattempted: 0},
	"NEET": {Correct: 4, Wrong: -1, Unattempted: 0},
	// UPSC prelims: one third of the question's marks per wrong answer.
	"UPSC": {Correct: 2, Wrong: -0.66, Unattempted: 0},
	"CSAT": {Correct: 2.5, Wrong: -0.83, Unattempted: 0},
}

// Scheme returns the marking scheme for an exam, falling back to the
// default scheme for unknown exams. It never fails.
func Scheme(exam string) models.MarkingScheme {
	if s, ok := markingSchemes[exam]; ok {
		return s
	}
	return markingSchemes[defaultExam]
}
