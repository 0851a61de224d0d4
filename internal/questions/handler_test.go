package questions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/prepgen/backend/internal/generator"
	"github.com/prepgen/backend/internal/models"
)

func newTestRouter(client generator.LLMClient) *mux.Router {
	handler := NewHandler(newTestService(client), generator.NewMetrics())
	router := mux.NewRouter()
	handler.Routes(router.PathPrefix("/api/v1").Subrouter())
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Generate(t *testing.T) {
	router := newTestRouter(&scriptedClient{responses: map[string]string{
		"Physics": batchText(8),
	}})

	rec := doJSON(t, router, "POST", "/api/v1/questions/generate", models.GenerateRequest{
		Exam: "JEE",
		SubjectData: map[string]models.SubjectConfig{
			"Physics": {NumQuestions: 3},
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp models.GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
	if resp.Questions[0].Correct == "" {
		t.Error("correct answer lost in JSON round trip")
	}
}

func TestHandler_Generate_BadBody(t *testing.T) {
	router := newTestRouter(generator.NewMockClient())

	req := httptest.NewRequest("POST", "/api/v1/questions/generate", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_Generate_ConfigError(t *testing.T) {
	router := newTestRouter(generator.NewMockClient())

	rec := doJSON(t, router, "POST", "/api/v1/questions/generate", models.GenerateRequest{
		Exam: "GRE",
		SubjectData: map[string]models.SubjectConfig{
			"Physics": {NumQuestions: 3},
		},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Success {
		t.Error("success = true in error response")
	}
	if body.Details["kind"] != string(models.KindConfiguration) {
		t.Errorf("details.kind = %v, want configuration", body.Details["kind"])
	}
}

func TestHandler_Generate_LLMFailure(t *testing.T) {
	router := newTestRouter(&scriptedClient{errs: map[string]error{
		"Physics": models.NewError(models.KindLLMService, "upstream down"),
	}})

	rec := doJSON(t, router, "POST", "/api/v1/questions/generate", models.GenerateRequest{
		Exam: "JEE",
		SubjectData: map[string]models.SubjectConfig{
			"Physics": {NumQuestions: 3},
		},
	})

	// The single subject failed, so the whole request surfaces the
	// shortfall.
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422; body: %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_Evaluate(t *testing.T) {
	router := newTestRouter(generator.NewMockClient())

	rec := doJSON(t, router, "POST", "/api/v1/questions/evaluate", models.EvaluateRequest{
		Exam:      "JEE",
		Questions: []models.Question{mcq(1, "Physics", "A"), mcq(2, "Physics", "B")},
		UserAnswers: map[int]*string{
			1: ptr("A"),
			2: ptr("A"),
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		TotalMarks float64         `json:"total_marks"`
		Insights   models.Insights `json:"insights"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalMarks != 3 {
		t.Errorf("total marks = %v, want 3", resp.TotalMarks)
	}
	if len(resp.Insights.Strengths)+len(resp.Insights.Weaknesses) == 0 {
		t.Error("insights missing from response")
	}
}

func TestHandler_Evaluate_Empty(t *testing.T) {
	router := newTestRouter(generator.NewMockClient())

	rec := doJSON(t, router, "POST", "/api/v1/questions/evaluate", models.EvaluateRequest{Exam: "JEE"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_ListExams(t *testing.T) {
	router := newTestRouter(generator.NewMockClient())

	rec := doJSON(t, router, "GET", "/api/v1/exams", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Exams []string `json:"exams"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Exams) == 0 {
		t.Error("no exams listed")
	}
}

func TestHandler_GetSyllabus(t *testing.T) {
	router := newTestRouter(generator.NewMockClient())

	rec := doJSON(t, router, "GET", "/api/v1/exams/JEE/syllabus", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Exam          string               `json:"exam"`
		Syllabus      map[string][]string  `json:"syllabus"`
		MarkingScheme models.MarkingScheme `json:"marking_scheme"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Syllabus["Physics"]) == 0 {
		t.Error("Physics chapters missing from syllabus")
	}
	if body.MarkingScheme.Correct != 4 {
		t.Errorf("marking scheme correct = %v, want 4", body.MarkingScheme.Correct)
	}
}

func TestHandler_GetSyllabus_Unknown(t *testing.T) {
	router := newTestRouter(generator.NewMockClient())

	rec := doJSON(t, router, "GET", "/api/v1/exams/GRE/syllabus", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandler_Metrics(t *testing.T) {
	router := newTestRouter(generator.NewMockClient())

	rec := doJSON(t, router, "GET", "/api/v1/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		LLM generator.MetricsSnapshot `json:"llm"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.LLM.Calls != 0 {
		t.Errorf("calls = %d, want 0 before any generation", body.LLM.Calls)
	}
}
