package ollama_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"snapname/internal/services/ollama"
)

func newClient(t *testing.T, handler http.HandlerFunc) *ollama.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return ollama.NewClient(ollama.Config{BaseURL: server.URL, Model: "moondream", TimeoutSeconds: 5})
}

func TestDescribeSendsChatRequest(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G'}

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Messages []struct {
				Role    string   `json:"role"`
				Content string   `json:"content"`
				Images  []string `json:"images"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Model != "moondream" {
			t.Errorf("model = %q", req.Model)
		}
		if req.Stream {
			t.Error("stream should be false")
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages %+v", req.Messages)
		}
		if want := base64.StdEncoding.EncodeToString(image); len(req.Messages) == 1 && (len(req.Messages[0].Images) != 1 || req.Messages[0].Images[0] != want) {
			t.Errorf("image payload not base64 of input")
		}

		io.WriteString(w, `{"message":{"role":"assistant","content":" A red apple on a table "}}`)
	})

	got, err := client.Describe(context.Background(), "Describe this image in 3 words or less.", image)
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if got != "A red apple on a table" {
		t.Fatalf("description = %q", got)
	}
}

func TestDescribeErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"http error status", http.StatusInternalServerError, "boom", ollama.ErrUnavailable},
		{"api error field", http.StatusOK, `{"error":"model not found"}`, ollama.ErrUnavailable},
		{"empty content", http.StatusOK, `{"message":{"content":"  "}}`, ollama.ErrMalformedResponse},
		{"invalid json", http.StatusOK, `{not json`, ollama.ErrMalformedResponse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})

			_, err := client.Describe(context.Background(), "prompt", []byte{1})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error %v does not wrap %v", err, tc.wantErr)
			}
		})
	}
}

func TestDescribeRejectsEmptyInputs(t *testing.T) {
	client := ollama.NewClient(ollama.Config{Model: "moondream"})
	if _, err := client.Describe(context.Background(), "", []byte{1}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if _, err := client.Describe(context.Background(), "prompt", nil); err == nil {
		t.Fatal("expected error for empty image")
	}
}

func TestListModels(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		io.WriteString(w, `{"models":[{"name":"moondream:latest"},{"name":"llava:13b"},{"name":"  "}]}`)
	})

	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels returned error: %v", err)
	}
	want := []string{"moondream:latest", "llava:13b"}
	if len(models) != len(want) {
		t.Fatalf("models = %v, want %v", models, want)
	}
	for i := range want {
		if models[i] != want[i] {
			t.Fatalf("models[%d] = %q, want %q", i, models[i], want[i])
		}
	}
}

func TestHealthCheckUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := ollama.NewClient(ollama.Config{BaseURL: server.URL, Model: "moondream", TimeoutSeconds: 1})
	err := client.HealthCheck(context.Background())
	if !errors.Is(err, ollama.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
