package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/idimitrov/docsorter/internal/core/domain"
)

func classifierServer(t *testing.T, response string) (*httptest.Server, *string) {
	t.Helper()
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedPrompt, _ = payload["prompt"].(string)
		body, _ := json.Marshal(map[string]string{"response": response})
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server, &capturedPrompt
}

func TestClassifyTakesTopRankedLabel(t *testing.T) {
	server, prompt := classifierServer(t, `{"labels":["Invoice","Protocol","Report"],"scores":[0.9,0.05,0.05]}`)

	clf := NewClassifier(New(server.URL, "test-model"), nil)
	cls, err := clf.Classify(context.Background(), "invoice text")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if cls.Label != domain.TypeInvoice {
		t.Fatalf("label = %s, want Invoice", cls.Label)
	}
	if cls.Confidence != 0.9 {
		t.Fatalf("confidence = %f, want 0.9", cls.Confidence)
	}
	for _, candidate := range []string{"Invoice", "Protocol", "Report", "invoice text"} {
		if !strings.Contains(*prompt, candidate) {
			t.Fatalf("prompt missing %q: %s", candidate, *prompt)
		}
	}
}

func TestClassifyRejectsEmptyText(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	clf := NewClassifier(New(server.URL, "test-model"), nil)
	_, err := clf.Classify(context.Background(), "   ")
	if err == nil {
		t.Fatalf("expected error for empty text")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if called {
		t.Fatalf("classifier backend should not be invoked for empty text")
	}
}

func TestClassifyRejectsLabelScoreMismatch(t *testing.T) {
	server, _ := classifierServer(t, `{"labels":["Invoice","Protocol"],"scores":[0.9]}`)

	clf := NewClassifier(New(server.URL, "test-model"), nil)
	if _, err := clf.Classify(context.Background(), "text"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestClassifyToleratesProseAroundJSON(t *testing.T) {
	server, _ := classifierServer(t, "Sure thing: {\"labels\":[\"Report\",\"Invoice\",\"Protocol\"],\"scores\":[0.7,0.2,0.1]} done")

	clf := NewClassifier(New(server.URL, "test-model"), nil)
	cls, err := clf.Classify(context.Background(), "quarterly report")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if cls.Label != domain.TypeReport {
		t.Fatalf("label = %s, want Report", cls.Label)
	}
}

func TestClassifyIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	clf := NewClassifier(New(server.URL, "test-model"), nil)
	_, err := clf.Classify(context.Background(), "text")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected response body in error, got %v", err)
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("502 should surface as temporary, got %v", err)
	}
}
