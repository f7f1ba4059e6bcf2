package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("stream must be false")
		}
		if req.Model != "llama3.2:1b" {
			t.Errorf("model = %q", req.Model)
		}
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "hello there", Done: true, DoneReason: "stop"}) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:1b")
	resp, err := p.Generate(context.Background(), GenerateRequest{Prompt: "say hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hello there" {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.StopReason != "stop" {
		t.Errorf("stopReason = %q", resp.StopReason)
	}
}

func TestOllamaGenerateNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "missing-model")
	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "x"})

	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("err = %v, want *CallError", err)
	}
	if callErr.Kind != ErrorNon2xx {
		t.Errorf("kind = %q, want non2xx", callErr.Kind)
	}
}

func TestOllamaGenerateMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all")) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:1b")
	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "x"})

	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("err = %v, want *CallError", err)
	}
	if callErr.Kind != ErrorMalformedBody {
		t.Errorf("kind = %q, want malformedBody", callErr.Kind)
	}
}

func TestOllamaGenerateNetworkError(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:1b")
	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "x"})

	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("err = %v, want *CallError", err)
	}
	if callErr.Kind != ErrorNetwork {
		t.Errorf("kind = %q, want network", callErr.Kind)
	}
}

func TestOllamaGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect and
		// cancels r.Context(); otherwise srv.Close deadlocks.
		io.Copy(io.Discard, r.Body) //nolint:errcheck
		<-r.Context().Done()
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:1b")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, GenerateRequest{Prompt: "x"})

	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("err = %v, want *CallError", err)
	}
	if callErr.Kind != ErrorTimeout {
		t.Errorf("kind = %q, want timeout", callErr.Kind)
	}
}

func TestOllamaHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models": []}`)) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:1b")
	if err := p.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildGenerateOptions(t *testing.T) {
	if got := buildGenerateOptions(GenerateRequest{}); got != nil {
		t.Errorf("options = %v, want nil for zero request", got)
	}
	got := buildGenerateOptions(GenerateRequest{Temperature: 0.7, MaxTokens: 128})
	if got["num_predict"] != 128 {
		t.Errorf("num_predict = %v", got["num_predict"])
	}
}
