package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"InterviewPractice_FeedbackService/internal/apperrors"
	"InterviewPractice_FeedbackService/internal/config"
)

type fakeAssembly struct {
	uploadURL    string
	transcriptID string
	statuses     []string
	jobError     string
	polls        atomic.Int32
	failUpload   bool
}

func (f *fakeAssembly) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "test-key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/octet-stream" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		if f.failUpload {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "RIFFdata" {
			t.Errorf("unexpected upload body %q", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"upload_url": f.uploadURL})
	})
	mux.HandleFunc("POST /transcript", func(w http.ResponseWriter, r *http.Request) {
		var req transcriptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode transcript request: %v", err)
		}
		if req.AudioURL != f.uploadURL || !req.LanguageDetection {
			t.Errorf("unexpected transcript request %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": f.transcriptID, "status": "queued"})
	})
	mux.HandleFunc("GET /transcript/{id}", func(w http.ResponseWriter, r *http.Request) {
		n := int(f.polls.Add(1)) - 1
		status := "processing"
		if n < len(f.statuses) {
			status = f.statuses[n]
		}
		resp := map[string]any{"id": r.PathValue("id"), "status": status}
		switch status {
		case "completed":
			resp["text"] = "I am a hard worker."
			resp["language_code"] = "en_us"
			resp["words"] = []map[string]any{
				{"text": "I", "start": 100, "end": 200, "confidence": 0.98},
				{"text": "am", "start": 200, "end": 350, "confidence": 0.95},
			}
		case "error":
			resp["error"] = f.jobError
		}
		json.NewEncoder(w).Encode(resp)
	})
	return mux
}

func newTestAssembly(t *testing.T, fake *fakeAssembly, key string, attempts int) (*AssemblyAI, string) {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	client := NewAssemblyAI(config.AssemblyAIConfig{
		APIKey:       key,
		BaseURL:      srv.URL + "/",
		PollInterval: time.Millisecond,
		MaxAttempts:  attempts,
		Timeout:      5 * time.Second,
	})

	path := filepath.Join(t.TempDir(), "converted-answer.wav")
	if err := os.WriteFile(path, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatal(err)
	}
	return client, path
}

func TestAssemblyAICompleted(t *testing.T) {
	fake := &fakeAssembly{uploadURL: "https://cdn.example/abc", transcriptID: "tx-1", statuses: []string{"queued", "processing", "completed"}}
	client, path := newTestAssembly(t, fake, "test-key", 10)

	got, err := client.Transcribe(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "I am a hard worker." || got.Language != "en_us" || got.IsFallback {
		t.Fatalf("unexpected transcription %+v", got)
	}
	if len(got.Segments) != 2 || got.Segments[1].Text != "am" || got.Segments[1].Start != 200 {
		t.Fatalf("unexpected segments %+v", got.Segments)
	}
	if fake.polls.Load() != 3 {
		t.Fatalf("expected 3 polls, got %d", fake.polls.Load())
	}
}

func TestAssemblyAIJobError(t *testing.T) {
	fake := &fakeAssembly{uploadURL: "u", transcriptID: "tx", statuses: []string{"error"}, jobError: "audio too short"}
	client, path := newTestAssembly(t, fake, "test-key", 10)

	_, err := client.Transcribe(context.Background(), path)
	var jobErr *TranscriptionJobError
	if !errors.As(err, &jobErr) {
		t.Fatalf("expected TranscriptionJobError, got %v", err)
	}
	if jobErr.Message != "audio too short" {
		t.Fatalf("unexpected message %q", jobErr.Message)
	}
}

func TestAssemblyAITimesOut(t *testing.T) {
	fake := &fakeAssembly{uploadURL: "u", transcriptID: "tx"}
	client, path := newTestAssembly(t, fake, "test-key", 3)

	if _, err := client.Transcribe(context.Background(), path); !errors.Is(err, ErrTranscriptionTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if fake.polls.Load() != 3 {
		t.Fatalf("expected exactly 3 polls, got %d", fake.polls.Load())
	}
}

func TestAssemblyAIMissingUploadURL(t *testing.T) {
	fake := &fakeAssembly{uploadURL: "", transcriptID: "tx"}
	client, path := newTestAssembly(t, fake, "test-key", 3)

	if _, err := client.Transcribe(context.Background(), path); !errors.Is(err, ErrNoUploadURL) {
		t.Fatalf("expected ErrNoUploadURL, got %v", err)
	}
}

func TestAssemblyAIMissingTranscriptID(t *testing.T) {
	fake := &fakeAssembly{uploadURL: "u", transcriptID: ""}
	client, path := newTestAssembly(t, fake, "test-key", 3)

	if _, err := client.Transcribe(context.Background(), path); !errors.Is(err, ErrNoTranscriptID) {
		t.Fatalf("expected ErrNoTranscriptID, got %v", err)
	}
}

func TestAssemblyAIUploadFailureIsExternal(t *testing.T) {
	fake := &fakeAssembly{failUpload: true}
	client, path := newTestAssembly(t, fake, "test-key", 3)

	_, err := client.Transcribe(context.Background(), path)
	if !apperrors.IsCode(err, apperrors.ErrCodeExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestAssemblyAIPreconditions(t *testing.T) {
	fake := &fakeAssembly{}
	client, path := newTestAssembly(t, fake, "", 3)
	if _, err := client.Transcribe(context.Background(), path); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	client, _ = newTestAssembly(t, fake, "test-key", 3)
	if _, err := client.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav")); !errors.Is(err, ErrAudioNotFound) {
		t.Fatalf("expected ErrAudioNotFound, got %v", err)
	}
}

func TestAssemblyAIPollHonorsCancel(t *testing.T) {
	fake := &fakeAssembly{uploadURL: "u", transcriptID: "tx"}
	client, path := newTestAssembly(t, fake, "test-key", 10)
	client.pollInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for fake.polls.Load() == 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	if _, err := client.Transcribe(ctx, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
