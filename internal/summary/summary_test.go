package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain/shots"
)

func TestBuildMessages(t *testing.T) {
	rows := []shots.ComparisonRow{
		{Zone: "Paint", AttemptsTeam: 10, MakesTeam: 6, FGPctTeam: 0.6, AttemptsRef: 8, MakesRef: 4, FGPctRef: 0.5},
		{Zone: "ThreePT", AttemptsRef: 12, MakesRef: 4, FGPctRef: 1.0 / 3.0},
	}
	msgs, err := BuildMessages("Boston Celtics", "League Average", "2024-25", rows)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(msgs) != 2 || msgs[0].Role != RoleSystem || msgs[1].Role != RoleUser {
		t.Fatalf("unexpected roles %+v", msgs)
	}
	user := msgs[1].Content
	for _, want := range []string{"Boston Celtics", "in 2024-25", "compared to League Average", `"zone":"Paint"`, `"reference_fg_pct":0.333`} {
		if !strings.Contains(user, want) {
			t.Fatalf("expected prompt to contain %q, got %s", want, user)
		}
	}
}

func TestOllamaClientSummarize(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{Message: Message{Role: "assistant", Content: "  Lives in the paint.  "}, Done: true})
	}))
	defer srv.Close()

	client := NewOllamaClient(OllamaConfig{BaseURL: srv.URL + "/"})
	text, err := client.Summarize(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if text != "Lives in the paint." {
		t.Fatalf("unexpected text %q", text)
	}
	if got.Model != DefaultModel || got.Stream || len(got.Messages) != 1 {
		t.Fatalf("unexpected request body %+v", got)
	}
}

func TestOllamaClientErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		},
		"error field": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"out of memory"}`))
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			_, err := NewOllamaClient(OllamaConfig{BaseURL: srv.URL, Model: "m"}).Summarize(context.Background(), nil)
			if err == nil || !strings.Contains(err.Error(), "ollama chat") {
				t.Fatalf("expected ollama error, got %v", err)
			}
		})
	}
}

func TestOllamaClientEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":" "},"done":true}`))
	}))
	defer srv.Close()
	_, err := NewOllamaClient(OllamaConfig{BaseURL: srv.URL}).Summarize(context.Background(), nil)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}
