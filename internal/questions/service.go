package questions

import (
	"context"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/prepgen/backend/internal/exams"
	"github.com/prepgen/backend/internal/generator"
	"github.com/prepgen/backend/internal/models"
)

const (
	// Extra questions requested per subject so that parse losses still
	// leave enough to fill the paper.
	safetyBuffer = 5

	defaultMaxWorkers      = 3
	maxQuestionsPerSubject = 100
)

type Service struct {
	generator  *generator.Generator
	maxWorkers int
}

func NewService(gen *generator.Generator) *Service {
	maxWorkers := defaultMaxWorkers
	if v := os.Getenv("GEN_MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxWorkers = n
		}
	}

	log.Printf("Service: model=%s maxWorkers=%d", gen.ModelName(), maxWorkers)

	return &Service{
		generator:  gen,
		maxWorkers: maxWorkers,
	}
}

// ── Multi-Subject Generation ────────────────────────────

// subjectBatch is one worker's output slot.
type subjectBatch struct {
	subject   string
	questions []models.Question
	err       error
}

// Generate produces a full paper across every subject in the request.
// The whole configuration is validated before any LLM call is made.
// Subjects run concurrently under a bounded worker pool; a failed
// subject contributes an empty batch and the request only fails as a
// whole when no subject produced anything.
func (s *Service) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	if !exams.IsValidExam(req.Exam) {
		return nil, models.NewError(models.KindConfiguration,
			"invalid exam: %s (valid: %v)", req.Exam, exams.Exams())
	}
	if len(req.SubjectData) == 0 {
		return nil, models.NewError(models.KindConfiguration, "subject_data must not be empty")
	}

	// Sorted subject order makes id assignment and response layout
	// deterministic even though the request carries a map.
	subjects := make([]string, 0, len(req.SubjectData))
	for subject := range req.SubjectData {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	for _, subject := range subjects {
		if err := s.validateSubjectConfig(req.Exam, subject, req.SubjectData[subject]); err != nil {
			return nil, err
		}
	}

	// Collect into per-subject slots, then merge in subject order.
	slots := make([]subjectBatch, len(subjects))
	sem := make(chan struct{}, s.maxWorkers)
	done := make(chan int, len(subjects))

	for i, subject := range subjects {
		go func(i int, subject string) {
			sem <- struct{}{}
			defer func() { <-sem }()

			cfg := req.SubjectData[subject]
			questions, err := s.generateForSubject(ctx, req.Exam, subject, cfg)
			slots[i] = subjectBatch{subject: subject, questions: questions, err: err}
			done <- i
		}(i, subject)
	}
	for range subjects {
		<-done
	}

	resp := &models.GenerateResponse{
		Questions: []models.Question{},
		BySubject: make(map[string][]models.Question, len(subjects)),
	}

	nextID := 1
	for _, slot := range slots {
		if slot.err != nil {
			log.Printf("WARN: generation failed for %s: %v", slot.subject, slot.err)
			resp.BySubject[slot.subject] = []models.Question{}
			continue
		}
		batch := make([]models.Question, len(slot.questions))
		for i, q := range slot.questions {
			q.ID = nextID
			nextID++
			batch[i] = q
			resp.Questions = append(resp.Questions, q)
		}
		resp.BySubject[slot.subject] = batch
	}
	resp.Total = len(resp.Questions)

	if resp.Total == 0 {
		requested := 0
		for _, subject := range subjects {
			requested += req.SubjectData[subject].NumQuestions
		}
		return nil, models.NewError(models.KindInsufficientQuestions,
			"generation produced no questions for any subject").
			WithDetail("requested", requested).
			WithDetail("generated", 0)
	}

	log.Printf("generated %d questions across %d subjects for %s",
		resp.Total, len(subjects), req.Exam)
	return resp, nil
}

func (s *Service) validateSubjectConfig(exam, subject string, cfg models.SubjectConfig) error {
	if !exams.IsValidSubject(exam, subject) {
		return models.NewError(models.KindConfiguration,
			"invalid subject for %s: %s (valid: %v)", exam, subject, exams.Subjects(exam)).
			WithSubject(subject)
	}
	if cfg.NumQuestions < 1 || cfg.NumQuestions > maxQuestionsPerSubject {
		return models.NewError(models.KindConfiguration,
			"num_questions for %s must be between 1 and %d, got %d",
			subject, maxQuestionsPerSubject, cfg.NumQuestions).
			WithSubject(subject)
	}
	if cfg.Difficulty != "" && !models.ValidDifficulties[cfg.Difficulty] {
		return models.NewError(models.KindConfiguration,
			"invalid difficulty for %s: %s", subject, cfg.Difficulty).
			WithSubject(subject)
	}
	for _, chapter := range cfg.Chapters {
		if !exams.IsValidChapter(exam, subject, chapter) {
			return models.NewError(models.KindConfiguration,
				"invalid chapter for %s/%s: %s", exam, subject, chapter).
				WithSubject(subject)
		}
	}
	return nil
}

// generateForSubject runs one subject's batch: over-request by the
// safety buffer, keep the first NumQuestions that parse and validate,
// and stamp chapter and difficulty onto each record.
func (s *Service) generateForSubject(ctx context.Context, exam, subject string, cfg models.SubjectConfig) ([]models.Question, error) {
	chapters := cfg.Chapters
	if len(chapters) == 0 {
		chapters = exams.Chapters(exam, subject)
	}
	difficulty := cfg.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}

	requestCount := cfg.NumQuestions + safetyBuffer
	questions, _, err := s.generator.GenerateSubjectBatch(ctx, exam, subject, chapters, requestCount, difficulty)
	if err != nil {
		return nil, err
	}

	if len(questions) > cfg.NumQuestions {
		questions = questions[:cfg.NumQuestions]
	} else if len(questions) < cfg.NumQuestions {
		log.Printf("WARN: shortfall for %s: requested %d, usable %d",
			subject, cfg.NumQuestions, len(questions))
	}

	for i := range questions {
		questions[i].Difficulty = difficulty
		// Chapter attribution is coarse: the batch prompt covers all
		// requested chapters, records carry the first one.
		questions[i].Chapter = chapters[0]
	}
	return questions, nil
}
