package analysis

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"InterviewPractice_FeedbackService/internal/llm"
	"InterviewPractice_FeedbackService/internal/models"
)

// stubRandom returns fixed values so scores are reproducible.
type stubRandom struct {
	f float64
	n int
}

func (s stubRandom) Float64() float64 { return s.f }

func (s stubRandom) IntN(n int) int {
	return min(s.n, n-1)
}

type panicRandom struct{}

func (panicRandom) Float64() float64 { panic("entropy exhausted") }
func (panicRandom) IntN(int) int     { panic("entropy exhausted") }

type fakeNormalizer struct {
	err error
}

func (f fakeNormalizer) Normalize(_ context.Context, in string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	out := filepath.Join(filepath.Dir(in), "converted-"+filepath.Base(in)+".wav")
	return out, os.WriteFile(out, []byte("RIFF"), 0o644)
}

type fakeTranscriber struct {
	result *models.Transcription
	err    error
	seen   string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, path string) (*models.Transcription, error) {
	f.seen = path
	return f.result, f.err
}

func (f *fakeTranscriber) Name() string { return "fake" }

type fakeChecker struct {
	issues []models.GrammarIssue
	err    error
	panics bool
}

func (f fakeChecker) Check(context.Context, string) ([]models.GrammarIssue, error) {
	if f.panics {
		panic("checker exploded")
	}
	return f.issues, f.err
}

type fakeCompleter struct {
	configured bool
	reply      string
	err        error
	messages   []llm.Message
}

func (f *fakeCompleter) Configured() bool { return f.configured }

func (f *fakeCompleter) Complete(_ context.Context, messages []llm.Message) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

type recordedStage struct {
	stage    string
	fallback bool
}

type fakeRecorder struct {
	mu       sync.Mutex
	stages   []recordedStage
	outcomes []string
}

func (r *fakeRecorder) StageCompleted(_ context.Context, stage string, _ time.Duration, fallback bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, recordedStage{stage: stage, fallback: fallback})
}

func (r *fakeRecorder) AnalysisFinished(_ context.Context, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func writeUpload(dir string) string {
	path := filepath.Join(dir, "upload.webm")
	os.WriteFile(path, []byte("webm"), 0o644)
	return path
}
