package generator

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ── MockClient — Local Development ─────────────────────────

var promptCountRe = regexp.MustCompile(`Generate (\d+) questions now`)

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (*LLMResponse, error) {
	count := 6
	if match := promptCountRe.FindStringSubmatch(prompt); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil && n > 0 {
			count = n
		}
	}
	return &LLMResponse{
		Content:      buildMockOutput(count),
		PromptTokens: 1500,
		OutputTokens: 500 * count,
	}, nil
}

func buildMockOutput(count int) string {
	correctAnswers := []string{"A", "B", "C", "D"}
	topics := []string{
		"projectile motion", "chemical equilibrium", "quadratic equations",
		"electromagnetic induction", "organic reactions", "coordinate geometry",
	}

	var sb strings.Builder
	for i := 0; i < count; i++ {
		correct := correctAnswers[i%len(correctAnswers)]
		topic := topics[i%len(topics)]

		fmt.Fprintf(&sb, "Q%d. [Mock] A standard exam problem on %s asks you to compute the expected value under the usual assumptions.\n", i+1, topic)
		for _, key := range correctAnswers {
			label := "an incorrect"
			if key == correct {
				label = "the correct"
			}
			fmt.Fprintf(&sb, "%s) [Mock] %s value derived from %s\n", key, label, topic)
		}
		fmt.Fprintf(&sb, "Answer: %s\n", correct)
		fmt.Fprintf(&sb, "Solution: [Mock] Applying the standard method for %s yields option %s directly.\n\n", topic, correct)
	}
	return sb.String()
}
