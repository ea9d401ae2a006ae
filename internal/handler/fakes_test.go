package handler

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"InterviewPractice_FeedbackService/internal/analysis"
	"InterviewPractice_FeedbackService/internal/config"
	"InterviewPractice_FeedbackService/internal/interview"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnalyzer struct {
	mu        sync.Mutex
	err       error
	calls     int
	question  string
	audio     []byte
	audioPath string
}

func (f *fakeAnalyzer) Run(ctx context.Context, question, audioPath string, progress analysis.Progress) (models.FeedbackReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.question = question
	f.audioPath = audioPath
	f.audio, _ = os.ReadFile(audioPath)

	emit := func(e analysis.Event) {
		if progress != nil {
			progress(e)
		}
	}
	for _, stage := range []analysis.Stage{analysis.StageTranscription, analysis.StageGrammar, analysis.StageConfidence, analysis.StageContent} {
		emit(analysis.Event{Stage: stage, Status: analysis.StatusStarted})
		emit(analysis.Event{Stage: stage, Status: analysis.StatusCompleted})
	}
	if f.err != nil {
		return models.FeedbackReport{}, f.err
	}
	return models.FeedbackReport{
		Question:               question,
		Transcription:          "I led the migration to the new billing system.",
		GrammarScore:           10,
		ConfidenceScore:        8,
		ContentScore:           7,
		Strengths:              []string{"Concrete example"},
		Weaknesses:             []string{},
		ImprovementSuggestions: []string{},
	}, nil
}

func (f *fakeAnalyzer) snapshot() (calls int, audio []byte, audioPath string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.audio, f.audioPath
}

type memHistory struct {
	mu      sync.Mutex
	err     error
	nextID  int64
	entries map[string][]models.HistoryEntry
}

func newMemHistory() *memHistory {
	return &memHistory{entries: map[string][]models.HistoryEntry{}}
}

func (m *memHistory) Append(_ context.Context, sessionID string, report models.FeedbackReport) (models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.HistoryEntry{}, m.err
	}
	m.nextID++
	entry := models.HistoryEntry{
		ID:        m.nextID,
		SessionID: sessionID,
		Question:  report.Question,
		Response:  report.Transcription,
		Report:    report,
		CreatedAt: time.Now(),
	}
	m.entries[sessionID] = append([]models.HistoryEntry{entry}, m.entries[sessionID]...)
	return entry, nil
}

func (m *memHistory) List(_ context.Context, sessionID string) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.HistoryEntry{}, m.entries[sessionID]...), nil
}

func (m *memHistory) Clear(_ context.Context, sessionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	n := int64(len(m.entries[sessionID]))
	delete(m.entries, sessionID)
	return n, nil
}

type fakeSpeech struct {
	err  error
	text string
}

func (f *fakeSpeech) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.text = text
	if f.err != nil {
		return nil, f.err
	}
	return []byte("RIFF....WAVE"), nil
}

var errBoom = errors.New("boom")

type testEnv struct {
	analyzer *fakeAnalyzer
	history  *memHistory
	speech   *fakeSpeech
	bank     *interview.Bank
	dir      string
	router   *gin.Engine
}

type envOption func(*Options, *RouterOptions)

func withoutSpeech() envOption {
	return func(o *Options, _ *RouterOptions) { o.Speech = nil }
}

func withMaxUpload(n int64) envOption {
	return func(o *Options, _ *RouterOptions) { o.MaxUploadBytes = n }
}

func withRateLimit(rps float64, burst int) envOption {
	return func(_ *Options, r *RouterOptions) {
		r.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerSecond: rps, Burst: burst, TTL: time.Minute}
	}
}

func withStaticDir(dir string) envOption {
	return func(_ *Options, r *RouterOptions) { r.StaticDir = dir }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	bank, err := interview.NewBank(interview.DefaultCorpus().Questions)
	if err != nil {
		t.Fatal(err)
	}
	env := &testEnv{
		analyzer: &fakeAnalyzer{},
		history:  newMemHistory(),
		speech:   &fakeSpeech{},
		bank:     bank,
		dir:      t.TempDir(),
	}
	o := Options{
		Analyzer:              env.analyzer,
		Questions:             bank,
		History:               env.history,
		Speech:                env.speech,
		UploadDir:             env.dir,
		MaxUploadBytes:        1 << 20,
		TranscriptionProvider: "assemblyai",
		ContentLLM:            true,
	}
	r := RouterOptions{Log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o, &r)
	}
	env.router = NewRouter(New(o), r)
	return env
}
