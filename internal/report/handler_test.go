package report_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"healai/internal/auth"
	"healai/internal/report"
)

const testSecret = "handler-test-secret"

func newTestRouter() (http.Handler, report.Service) {
	svc, _, _ := newTestService()
	h := report.NewHandler(svc)

	r := chi.NewRouter()
	r.Use(auth.Authenticator(testSecret))
	r.Route("/api", func(r chi.Router) {
		report.RegisterRoutes(r, h)
	})
	return r, svc
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, p *auth.Principal) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if p != nil {
		token, err := auth.SignToken(testSecret, *p, time.Hour)
		if err != nil {
			t.Fatalf("SignToken failed: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateReportEndpoint_Unauthenticated(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, "POST", "/api/reports", `{"symptoms":"s","assessment":"a"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestCreateReportEndpoint_MissingFields(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, "POST", "/api/reports", `{"assessment":"## A\ntext"}`, &alice)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing symptoms, got %d", rec.Code)
	}

	rec = doRequest(t, router, "POST", "/api/reports", `{"symptoms":"headache"}`, &alice)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing assessment, got %d", rec.Code)
	}
}

func TestCreateReportEndpoint_Success(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, "POST", "/api/reports",
		`{"symptoms":"fever and chills","assessment":"## Fever Overview\nDetails..."}`, &alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Report  struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			CreatedAt string `json:"createdAt"`
		} `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success=true")
	}
	if resp.Report.ID == "" || resp.Report.Title != "Fever Overview" || resp.Report.CreatedAt == "" {
		t.Errorf("Unexpected summary: %+v", resp.Report)
	}
	// Create must not echo the submitted content back.
	if strings.Contains(rec.Body.String(), "fever and chills") {
		t.Error("Create response must not include symptoms")
	}
	if strings.Contains(rec.Body.String(), "Details...") {
		t.Error("Create response must not include the assessment body")
	}
}

func TestListReportsEndpoint_UnknownUser_EmptyArray(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, "GET", "/api/reports", "", &alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Reports []json.RawMessage `json:"reports"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Reports == nil {
		t.Error("Expected empty array, got null")
	}
	if len(resp.Reports) != 0 {
		t.Errorf("Expected 0 reports, got %d", len(resp.Reports))
	}
}

func TestGetReportEndpoint_FullRecord(t *testing.T) {
	router, svc := newTestRouter()

	summary, err := svc.Create(context.Background(), alice, "sore throat", "## Throat\ntext")
	if err != nil {
		t.Fatalf("Seed create failed: %v", err)
	}

	rec := doRequest(t, router, "GET", "/api/reports/"+summary.ID.String(), "", &alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Report struct {
			Title      string `json:"title"`
			Symptoms   string `json:"symptoms"`
			Assessment string `json:"assessment"`
		} `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Report.Symptoms != "sore throat" || resp.Report.Assessment != "## Throat\ntext" {
		t.Errorf("Expected the full record, got %+v", resp.Report)
	}
}

func TestGetReportEndpoint_ForeignReport_404(t *testing.T) {
	router, svc := newTestRouter()
	ctx := context.Background()

	summary, err := svc.Create(ctx, alice, "alice symptoms", "## Alice\ntext")
	if err != nil {
		t.Fatalf("Seed create failed: %v", err)
	}
	if _, err := svc.Create(ctx, bob, "bob symptoms", "## Bob\ntext"); err != nil {
		t.Fatalf("Seed create failed: %v", err)
	}

	rec := doRequest(t, router, "GET", "/api/reports/"+summary.ID.String(), "", &bob)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for another user's report, got %d", rec.Code)
	}
}

func TestGetReportEndpoint_BadID_404(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, "GET", "/api/reports/not-a-uuid", "", &alice)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unparsable id, got %d", rec.Code)
	}
}

func TestGetReportEndpoint_Unauthenticated(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, "GET", "/api/reports", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}
