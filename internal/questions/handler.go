package questions

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/prepgen/backend/internal/exams"
	"github.com/prepgen/backend/internal/generator"
	"github.com/prepgen/backend/internal/models"
)

type Handler struct {
	service *Service
	metrics *generator.Metrics
}

func NewHandler(service *Service, metrics *generator.Metrics) *Handler {
	return &Handler{service: service, metrics: metrics}
}

func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/questions/generate", h.Generate).Methods("POST")
	r.HandleFunc("/questions/evaluate", h.Evaluate).Methods("POST")
	r.HandleFunc("/exams", h.ListExams).Methods("GET")
	r.HandleFunc("/exams/{exam}/syllabus", h.GetSyllabus).Methods("GET")
	r.HandleFunc("/metrics", h.Metrics).Methods("GET")
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request body", nil))
		return
	}

	resp, err := h.service.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// EvaluateResponse pairs the scored attempt with derived insights.
type EvaluateResponse struct {
	*models.EvaluationResult
	Insights models.Insights `json:"insights"`
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request body", nil))
		return
	}

	result, err := h.service.Evaluate(req.Questions, req.UserAnswers, req.Exam)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, EvaluateResponse{
		EvaluationResult: result,
		Insights:         PerformanceInsights(result),
	})
}

func (h *Handler) ListExams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"exams": exams.Exams()})
}

func (h *Handler) GetSyllabus(w http.ResponseWriter, r *http.Request) {
	exam := mux.Vars(r)["exam"]
	if !exams.IsValidExam(exam) {
		writeJSON(w, http.StatusNotFound, errorBody("Unknown exam: "+exam, nil))
		return
	}

	syllabus := make(map[string][]string)
	for _, subject := range exams.Subjects(exam) {
		syllabus[subject] = exams.Chapters(exam, subject)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"exam":           exam,
		"syllabus":       syllabus,
		"marking_scheme": exams.Scheme(exam),
	})
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"llm": h.metrics.Snapshot()})
}

// ── Helpers ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps tagged pipeline errors to HTTP statuses. Untagged
// errors are logged server-side and surfaced as opaque 500s.
func writeError(w http.ResponseWriter, err error) {
	var pe *models.Error
	status := http.StatusInternalServerError
	switch models.KindOf(err) {
	case models.KindConfiguration, models.KindValidation:
		status = http.StatusBadRequest
	case models.KindInsufficientQuestions:
		status = http.StatusUnprocessableEntity
	case models.KindLLMService:
		status = http.StatusBadGateway
	case "":
		log.Printf("ERROR: unhandled: %v", err)
		writeJSON(w, status, errorBody("Internal server error", nil))
		return
	}

	body := errorBody(err.Error(), nil)
	if errors.As(err, &pe) {
		details := make(map[string]any, len(pe.Details)+2)
		for k, v := range pe.Details {
			details[k] = v
		}
		details["kind"] = pe.Kind
		if pe.Subject != "" {
			details["subject"] = pe.Subject
		}
		body.Details = details
	}
	writeJSON(w, status, body)
}

func errorBody(message string, details map[string]any) models.ErrorResponse {
	return models.ErrorResponse{Success: false, Error: message, Details: details}
}
