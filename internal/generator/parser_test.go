package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prepgen/backend/internal/models"
)

func validBatchText(count int) string {
	correctAnswers := []string{"A", "B", "C", "D"}
	var sb strings.Builder

	for i := 0; i < count; i++ {
		correct := correctAnswers[i%len(correctAnswers)]
		fmt.Fprintf(&sb, "Q%d. What is the value of the expression in standard problem number %d?\n", i+1, i+1)
		for _, key := range correctAnswers {
			fmt.Fprintf(&sb, "%s) candidate value %s for problem %d\n", key, key, i+1)
		}
		fmt.Fprintf(&sb, "Answer: %s\n", correct)
		fmt.Fprintf(&sb, "Solution: Applying the standard method yields option %s for problem %d.\n\n", correct, i+1)
	}
	return sb.String()
}

func TestParseOutput_ValidBatch(t *testing.T) {
	input := validBatchText(6)

	questions, err := ParseOutput(input, "Physics", 6, false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(questions) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(questions))
	}

	for i, q := range questions {
		if q.Subject != "Physics" {
			t.Errorf("question %d: subject = %q, want Physics", i+1, q.Subject)
		}
		if q.Type != models.TypeMCQ {
			t.Errorf("question %d: type = %q, want mcq", i+1, q.Type)
		}
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
		for _, key := range models.OptionKeys {
			if _, ok := q.Options[key]; !ok {
				t.Errorf("question %d: missing option %s", i+1, key)
			}
		}
		if !models.ValidOptions[q.Correct] {
			t.Errorf("question %d: correct = %q, want one of A-D", i+1, q.Correct)
		}
		if q.Solution == "" {
			t.Errorf("question %d: empty solution", i+1)
		}
	}
}

func TestParseOutput_QuestionTextExcludesStructure(t *testing.T) {
	input := validBatchText(2)

	questions, err := ParseOutput(input, "Chemistry", 2, false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	for i, q := range questions {
		for _, fragment := range []string{"A)", "B)", "C)", "D)", "Answer:", "Solution:"} {
			if strings.Contains(q.Question, fragment) {
				t.Errorf("question %d: text contains %q: %q", i+1, fragment, q.Question)
			}
		}
		if strings.HasPrefix(q.Question, "Q") && strings.Contains(q.Question[:3], ".") {
			t.Errorf("question %d: leading marker not stripped: %q", i+1, q.Question)
		}
	}
}

func TestParseOutput_Idempotent(t *testing.T) {
	input := validBatchText(4)

	first, err := ParseOutput(input, "Physics", 4, false)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := ParseOutput(input, "Physics", 4, false)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("parse not deterministic: %d vs %d questions", len(first), len(second))
	}
	for i := range first {
		if first[i].Question != second[i].Question || first[i].Correct != second[i].Correct {
			t.Errorf("question %d differs between parses", i+1)
		}
	}
}

func TestParseOutput_TruncatesToExpectedCount(t *testing.T) {
	input := validBatchText(8)

	questions, err := ParseOutput(input, "Physics", 5, false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(questions) != 5 {
		t.Fatalf("expected truncation to 5 questions, got %d", len(questions))
	}
	// The head of the list survives truncation.
	if !strings.Contains(questions[0].Question, "problem number 1") {
		t.Errorf("first question not preserved: %q", questions[0].Question)
	}
}

func TestParseOutput_NumericalAnswer(t *testing.T) {
	input := "Q1. What is the sum of the first four positive integers in this sequence?\n" +
		"Answer: 10\n" +
		"Solution: Adding 1+2+3+4 gives 10 by direct computation.\n"

	questions, err := ParseOutput(input, "Mathematics", 1, false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	q := questions[0]
	if q.Type != models.TypeNumerical {
		t.Errorf("type = %q, want numerical", q.Type)
	}
	if q.CorrectInt != 10 {
		t.Errorf("correct = %d, want 10", q.CorrectInt)
	}
	if len(q.Options) != 0 {
		t.Errorf("numerical question has %d options, want 0", len(q.Options))
	}
}

func TestParseOutput_FallbackRecovery(t *testing.T) {
	// No line-start "Qn." markers anywhere: the primary pass treats the
	// whole text as one block, the leading stray answer/solution swallow
	// everything, and only the blank-line fallback recovers the question.
	input := "Answer: A\n" +
		"Solution: The first candidate satisfies the equation when substituted.\n" +
		"\n" +
		"Q2 Which planet has the largest number of known moons in the solar system?\n" +
		"A) Earth has exactly one moon\n" +
		"B) Saturn with well over one hundred\n" +
		"C) Mercury has two small moons\n" +
		"D) Venus has a captured asteroid\n" +
		"Answer: B\n" +
		"Solution: Saturn currently has the most confirmed moons of any planet.\n"

	questions, err := ParseOutput(input, "Physics", 1, false)
	if err != nil {
		t.Fatalf("expected fallback to recover a question, got: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Correct != "B" {
		t.Errorf("correct = %q, want B", questions[0].Correct)
	}
}

func TestParseOutput_EmptyInput(t *testing.T) {
	_, err := ParseOutput("   \n\n  ", "Physics", 5, false)
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if !models.IsKind(err, models.KindParsing) {
		t.Errorf("error kind = %v, want parsing", models.KindOf(err))
	}
}

func TestParseOutput_Garbage(t *testing.T) {
	_, err := ParseOutput("no questions here, just prose about exams", "Physics", 5, false)
	if err == nil {
		t.Fatal("expected error for unparseable input")
	}
	if !models.IsKind(err, models.KindParsing) {
		t.Errorf("error kind = %v, want parsing", models.KindOf(err))
	}
}

func TestParseOutput_StrictShortfall(t *testing.T) {
	input := validBatchText(3)

	_, err := ParseOutput(input, "Physics", 10, true)
	if err == nil {
		t.Fatal("expected error in strict mode with shortfall")
	}
	if !models.IsKind(err, models.KindInsufficientQuestions) {
		t.Errorf("error kind = %v, want insufficient_questions", models.KindOf(err))
	}
}

func TestParseOutput_StrictLowSuccessRate(t *testing.T) {
	// 5 parseable blocks, 2 with solutions too short to validate: a 60%
	// success rate, under the 80% strict threshold.
	input := validBatchText(3)
	for i := 4; i <= 5; i++ {
		input += fmt.Sprintf("Q%d. What is the value of the expression in standard problem number %d?\n", i, i) +
			"A) first candidate\nB) second candidate\nC) third candidate\nD) fourth candidate\n" +
			"Answer: A\n" +
			"Solution: tiny\n\n"
	}

	_, err := ParseOutput(input, "Physics", 0, true)
	if err == nil {
		t.Fatal("expected error for low success rate in strict mode")
	}
	if !models.IsKind(err, models.KindParsing) {
		t.Errorf("error kind = %v, want parsing", models.KindOf(err))
	}

	// The same batch passes in non-strict mode with only the valid subset.
	questions, err := ParseOutput(input, "Physics", 0, false)
	if err != nil {
		t.Fatalf("expected no error in non-strict mode, got: %v", err)
	}
	if len(questions) != 3 {
		t.Errorf("expected 3 valid questions, got %d", len(questions))
	}
}

func TestParseOutput_NonStrictShortfall(t *testing.T) {
	input := validBatchText(3)

	questions, err := ParseOutput(input, "Physics", 10, false)
	if err != nil {
		t.Fatalf("expected no error in non-strict mode, got: %v", err)
	}
	if len(questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(questions))
	}
}

func TestParseOutput_InvalidRecordsDropped(t *testing.T) {
	// Second block has only two options and no recoverable structure.
	input := validBatchText(1) +
		"Q2. Which of the following values satisfies the stated equation?\n" +
		"A) first candidate\n" +
		"B) second candidate\n" +
		"Answer: A\n" +
		"Solution: Substituting confirms the first candidate works.\n"

	questions, err := ParseOutput(input, "Physics", 2, false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected invalid record to be dropped, got %d questions", len(questions))
	}
}

func TestSanitizeText(t *testing.T) {
	got := sanitizeText("  spread \n  across\t\tlines  ")
	want := "spread across lines"
	if got != want {
		t.Errorf("sanitizeText = %q, want %q", got, want)
	}
}
