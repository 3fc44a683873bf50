package agent_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"healai/internal/agent"
	"healai/internal/auth"
)

const testSecret = "agent-test-secret"

// fakeClient returns a canned assessment; failing backends are modeled by
// returning the fallback text, which is what the real client does.
type fakeClient struct {
	response string
	lastSeen string
}

func (f *fakeClient) GenerateAssessment(ctx context.Context, symptoms string) string {
	f.lastSeen = symptoms
	return f.response
}

func newTestRouter(client agent.Client) http.Handler {
	h := agent.NewHandler(client)
	r := chi.NewRouter()
	r.Use(auth.Authenticator(testSecret))
	r.Route("/api", func(r chi.Router) {
		agent.RegisterRoutes(r, h)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/diagnosis", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		token, err := auth.SignToken(testSecret, auth.Principal{Email: "alice@example.com"}, time.Hour)
		if err != nil {
			t.Fatalf("SignToken failed: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGenerateDiagnosis_Success(t *testing.T) {
	client := &fakeClient{response: "## Initial Assessment\nLikely a common cold."}
	router := newTestRouter(client)

	rec := doRequest(t, router, `{"symptoms":"runny nose and sneezing"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp agent.DiagnosisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Assessment != client.response {
		t.Errorf("Expected assessment passed through verbatim, got '%s'", resp.Assessment)
	}
	if client.lastSeen != "runny nose and sneezing" {
		t.Errorf("Client should receive the raw symptom text, got '%s'", client.lastSeen)
	}
}

func TestGenerateDiagnosis_BackendFailure_StillOK(t *testing.T) {
	client := &fakeClient{response: agent.FallbackAssessment}
	router := newTestRouter(client)

	rec := doRequest(t, router, `{"symptoms":"chest tightness"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("Generation failure must not be an error status, got %d", rec.Code)
	}

	var resp agent.DiagnosisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if !strings.HasPrefix(resp.Assessment, "## Error Processing Request") {
		t.Errorf("Expected fallback markdown, got '%s'", resp.Assessment)
	}
}

func TestGenerateDiagnosis_Unauthenticated(t *testing.T) {
	router := newTestRouter(&fakeClient{response: "x"})

	rec := doRequest(t, router, `{"symptoms":"headache"}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestGenerateDiagnosis_EmptySymptoms(t *testing.T) {
	client := &fakeClient{response: "x"}
	router := newTestRouter(client)

	for _, body := range []string{`{"symptoms":""}`, `{"symptoms":"   "}`, `{}`} {
		rec := doRequest(t, router, body, true)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if client.lastSeen != "" {
		t.Error("Empty symptoms must not reach the backend")
	}
}
