package generator

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/prepgen/backend/internal/models"
)

// Parsing thresholds.
const (
	minParseSuccessRate = 0.8
	// Fallback blocks shorter than this are noise, not questions.
	fallbackMinBlockLen = 50
	fallbackMinOptions  = 3
)

var (
	// Primary block boundary: a question-number marker at line start.
	questionMarkerRe = regexp.MustCompile(`(?m)^Q\d+\.`)
	// Fallback boundary: any question-number marker, even mid-line.
	looseMarkerRe = regexp.MustCompile(`Q\d+`)
	blankLineRe   = regexp.MustCompile(`\n\s*\n+`)

	answerRe        = regexp.MustCompile(`(?i)Answer:\s*([A-D])`)
	numericAnswerRe = regexp.MustCompile(`(?i)Answer:\s*(-?\d+(?:\.\d+)?)`)
	solutionRe      = regexp.MustCompile(`(?is)Solution:\s*(.*)`)
	leadingMarkerRe = regexp.MustCompile(`(?i)^Q\d+\.?\s*`)

	optionRes = buildOptionRes()
)

func buildOptionRes() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(models.OptionKeys))
	for _, key := range models.OptionKeys {
		res[key] = regexp.MustCompile(`(?im)^[ \t]*` + key + `\)[ \t]*(.*)`)
	}
	return res
}

// ParseOutput extracts structured questions from raw LLM output.
//
// Primary strategy splits the text before each line-start "Q<n>." marker;
// if that yields nothing, a looser fallback splits on blank lines and
// bare "Q<n>" markers with stricter per-block filtering. Records that
// fail structural validation are dropped, never returned.
//
// In strict mode a success rate below 80% or a shortfall against
// expectedCount is an error; otherwise both only log warnings. A fully
// unparseable input is an error in either mode.
func ParseOutput(text, subject string, expectedCount int, strict bool) ([]models.Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewError(models.KindParsing, "empty LLM output").WithSubject(subject)
	}
	text = strings.TrimSpace(text)

	questions := parseBlocks(splitPrimary(text))
	log.Printf("primary parsing extracted %d questions for %s", len(questions), subject)

	if len(questions) == 0 {
		log.Printf("WARN: primary parsing found nothing for %s, using fallback strategy", subject)
		questions = parseFallback(text)
		log.Printf("fallback parsing extracted %d questions for %s", len(questions), subject)
	}

	if len(questions) == 0 {
		return nil, models.NewError(models.KindParsing,
			"failed to parse any questions from LLM output").WithSubject(subject)
	}

	// Hard truncation before validation to bound downstream work. The
	// head of the list is kept; there is no quality ranking.
	if expectedCount > 0 && len(questions) > expectedCount {
		log.Printf("WARN: truncating parsed questions for %s: got %d, limiting to %d",
			subject, len(questions), expectedCount)
		questions = questions[:expectedCount]
	}

	valid := make([]models.Question, 0, len(questions))
	invalid := 0
	for i := range questions {
		questions[i].ID = i // batch-local index; the service assigns real ids
		questions[i].Subject = subject
		if ok, errs := ValidateQuestion(questions[i]); ok {
			valid = append(valid, questions[i])
		} else {
			invalid++
			log.Printf("WARN: question %d for %s failed validation: %s",
				i, subject, strings.Join(errs, "; "))
		}
	}
	log.Printf("validation complete for %s: %d valid, %d invalid", subject, len(valid), invalid)

	if len(valid) == 0 {
		return nil, models.NewError(models.KindParsing,
			"no questions survived validation (%d parsed)", len(questions)).WithSubject(subject)
	}

	successRate := float64(len(valid)) / float64(len(questions))
	if strict && successRate < minParseSuccessRate {
		return nil, models.NewError(models.KindParsing,
			"low parsing success rate: %.0f%% (threshold %.0f%%)",
			successRate*100, minParseSuccessRate*100).WithSubject(subject)
	}

	if expectedCount > 0 && len(valid) < expectedCount {
		log.Printf("WARN: insufficient questions for %s: expected %d, got %d",
			subject, expectedCount, len(valid))
		if strict {
			return nil, models.NewError(models.KindInsufficientQuestions,
				"insufficient questions: requested %d, generated %d", expectedCount, len(valid)).
				WithSubject(subject).
				WithDetail("requested", expectedCount).
				WithDetail("generated", len(valid))
		}
	}

	return valid, nil
}

// splitPrimary cuts the text immediately before each line-start question
// marker. Text before the first marker becomes its own block; with no
// markers at all the whole text is a single block.
func splitPrimary(text string) []string {
	return splitBefore(text, questionMarkerRe.FindAllStringIndex(text, -1))
}

func splitBefore(text string, locs [][]int) []string {
	cuts := []int{0}
	for _, loc := range locs {
		if loc[0] != 0 {
			cuts = append(cuts, loc[0])
		}
	}
	cuts = append(cuts, len(text))

	var blocks []string
	for i := 0; i+1 < len(cuts); i++ {
		if b := strings.TrimSpace(text[cuts[i]:cuts[i+1]]); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func parseBlocks(blocks []string) []models.Question {
	var questions []models.Question
	for _, block := range blocks {
		if q := parseBlock(block); q != nil {
			questions = append(questions, *q)
		}
	}
	return questions
}

// parseFallback recovers partially malformed output: blocks are split on
// blank lines and loose question markers, and anything too short or with
// fewer than 3 options is discarded.
func parseFallback(text string) []models.Question {
	var blocks []string
	for _, chunk := range blankLineRe.Split(text, -1) {
		blocks = append(blocks, splitBefore(chunk, looseMarkerRe.FindAllStringIndex(chunk, -1))...)
	}

	var questions []models.Question
	for _, block := range blocks {
		if len(block) <= fallbackMinBlockLen {
			continue
		}
		q := parseBlock(block)
		if q == nil || len(q.Options) < fallbackMinOptions {
			continue
		}
		questions = append(questions, *q)
	}
	return questions
}

// parseBlock extracts one question from a block, or nil when no question
// text can be found. Answer and solution spans are excised before option
// matching, and each option match is excised in turn so later patterns
// cannot re-match earlier option text.
func parseBlock(block string) *models.Question {
	q := &models.Question{Type: models.TypeMCQ}
	clean := block

	if m := answerRe.FindStringSubmatchIndex(clean); m != nil {
		q.Correct = strings.ToUpper(clean[m[2]:m[3]])
		clean = clean[:m[0]] + clean[m[1]:]
	} else if m := numericAnswerRe.FindStringSubmatchIndex(clean); m != nil {
		// Coerce through float so "42.0"-style output survives.
		if f, err := strconv.ParseFloat(clean[m[2]:m[3]], 64); err == nil {
			q.CorrectInt = int(f)
			q.Type = models.TypeNumerical
		}
		clean = clean[:m[0]] + clean[m[1]:]
	}

	if m := solutionRe.FindStringSubmatchIndex(clean); m != nil {
		q.Solution = sanitizeText(clean[m[2]:m[3]])
		clean = clean[:m[0]] + clean[m[1]:]
	}

	if q.Type == models.TypeMCQ {
		options := make(map[string]string, len(models.OptionKeys))
		for _, key := range models.OptionKeys {
			m := optionRes[key].FindStringSubmatchIndex(clean)
			if m == nil {
				continue
			}
			options[key] = sanitizeText(clean[m[2]:m[3]])
			clean = clean[:m[0]] + clean[m[1]:]
		}
		q.Options = options
	}

	// Question text: first non-empty line left after the excisions,
	// minus any leading "Q<n>." marker.
	for _, line := range strings.Split(clean, "\n") {
		line = leadingMarkerRe.ReplaceAllString(strings.TrimSpace(line), "")
		if line == "" || strings.HasPrefix(line, "Answer:") || strings.HasPrefix(line, "Solution:") {
			continue
		}
		q.Question = sanitizeText(line)
		break
	}
	if q.Question == "" {
		return nil
	}

	return q
}

// sanitizeText collapses all internal whitespace runs to single spaces
// and trims the ends.
func sanitizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
