package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestQuestionJSON_MCQCorrectLetter(t *testing.T) {
	q := Question{
		ID:       1,
		Type:     TypeMCQ,
		Subject:  "Physics",
		Question: "Which option is marked correct in this record?",
		Options:  map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
		Correct:  "B",
		Solution: "The record marks option B as correct.",
	}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"correct":"B"`) {
		t.Errorf("correct not emitted as letter: %s", data)
	}

	var back Question
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Correct != "B" {
		t.Errorf("correct = %q after round trip, want B", back.Correct)
	}
}

func TestQuestionJSON_NumericalCorrectInteger(t *testing.T) {
	q := Question{
		ID:         2,
		Type:       TypeNumerical,
		Subject:    "Mathematics",
		Question:   "What integer does this record store as its answer?",
		CorrectInt: 42,
		Solution:   "The record stores 42 as the integer answer.",
	}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"correct":42`) {
		t.Errorf("correct not emitted as integer: %s", data)
	}

	var back Question
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.CorrectInt != 42 {
		t.Errorf("correct = %d after round trip, want 42", back.CorrectInt)
	}
	if back.Type != TypeNumerical {
		t.Errorf("type = %q after round trip, want numerical", back.Type)
	}
}

func TestQuestionJSON_FloatCoercion(t *testing.T) {
	var q Question
	input := `{"id":3,"question":"coerced","correct":42.0,"solution":"s"}`
	if err := json.Unmarshal([]byte(input), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.CorrectInt != 42 {
		t.Errorf("correct = %d, want 42", q.CorrectInt)
	}
	if q.Type != TypeNumerical {
		t.Errorf("type = %q, want numerical inferred from integer answer", q.Type)
	}
}

func TestQuestionJSON_BadCorrect(t *testing.T) {
	var q Question
	input := `{"id":4,"question":"bad","correct":[1,2],"solution":"s"}`
	if err := json.Unmarshal([]byte(input), &q); err == nil {
		t.Fatal("expected error for non-scalar correct value")
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{71.42857142857143, 71.43},
		{0, 0},
		{99.999, 100},
		{33.333333, 33.33},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
