package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/rs/zerolog"
)

type Stage string

const (
	StageUpload        Stage = "upload"
	StageTranscription Stage = "transcription"
	StageGrammar       Stage = "grammar"
	StageConfidence    Stage = "confidence"
	StageContent       Stage = "content"
	StageReport        Stage = "report"
	StageError         Stage = "error"
)

const (
	StatusStarted   = "started"
	StatusCompleted = "completed"
)

// Outcomes reported to the Recorder once per run.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// Event is a progress notification for one stage.
type Event struct {
	Stage    Stage  `json:"stage"`
	Status   string `json:"status"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Progress receives stage events. Calls are serialized by the pipeline.
type Progress func(Event)

// Recorder observes stage timings and run outcomes.
type Recorder interface {
	StageCompleted(ctx context.Context, stage string, elapsed time.Duration, fallback bool)
	AnalysisFinished(ctx context.Context, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) StageCompleted(context.Context, string, time.Duration, bool) {}
func (nopRecorder) AnalysisFinished(context.Context, string)                    {}

// Pipeline turns an uploaded answer into a feedback report: transcription
// first, then grammar, confidence and content over the transcript.
type Pipeline struct {
	transcription *TranscriptionService
	grammar       *GrammarAnalyzer
	confidence    *ConfidenceAnalyzer
	content       *ContentAnalyzer
	concurrent    bool
	recorder      Recorder
	log           zerolog.Logger
}

type PipelineOption func(*Pipeline)

// WithSequential runs the three analyzers one after another.
func WithSequential() PipelineOption {
	return func(p *Pipeline) { p.concurrent = false }
}

func WithRecorder(r Recorder) PipelineOption {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

func NewPipeline(t *TranscriptionService, g *GrammarAnalyzer, c *ConfidenceAnalyzer, content *ContentAnalyzer, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		transcription: t,
		grammar:       g,
		confidence:    c,
		content:       content,
		concurrent:    true,
		recorder:      nopRecorder{},
		log:           logger.Component("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run analyses the answer stored at audioPath. Upstream failures never
// surface here; an error means the caller went away or something
// unexpected broke.
func (p *Pipeline) Run(ctx context.Context, question, audioPath string, progress Progress) (report models.FeedbackReport, err error) {
	var mu sync.Mutex
	emit := func(e Event) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		progress(e)
	}

	anyFallback := false
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Msg("Run(): pipeline panicked")
			err = fmt.Errorf("analysis pipeline: %v", r)
		}
		switch {
		case err != nil:
			p.recorder.AnalysisFinished(ctx, OutcomeError)
		case anyFallback:
			p.recorder.AnalysisFinished(ctx, OutcomeFallback)
		default:
			p.recorder.AnalysisFinished(ctx, OutcomeSuccess)
		}
	}()

	emit(Event{Stage: StageTranscription, Status: StatusStarted})
	start := time.Now()
	transcription := p.transcription.Transcribe(ctx, audioPath)
	p.recorder.StageCompleted(ctx, string(StageTranscription), time.Since(start), transcription.IsFallback)
	emit(Event{Stage: StageTranscription, Status: StatusCompleted, Fallback: transcription.IsFallback})
	anyFallback = transcription.IsFallback

	if err := ctx.Err(); err != nil {
		return models.FeedbackReport{}, err
	}
	p.log.Info().Bool("fallback", transcription.IsFallback).Int("chars", len(transcription.Text)).
		Msg("Run(): transcription ready")

	var (
		grammar                            models.GrammarResult
		confidence                         models.ConfidenceResult
		content                            models.ContentResult
		grammarFb, confidenceFb, contentFb bool
	)
	stages := []func(){
		func() {
			grammar, grammarFb = timed(ctx, p, StageGrammar, emit, func() (models.GrammarResult, bool) {
				return p.grammar.Analyze(ctx, transcription.Text)
			})
		},
		func() {
			confidence, confidenceFb = timed(ctx, p, StageConfidence, emit, func() (models.ConfidenceResult, bool) {
				return p.confidence.Analyze(transcription.Text)
			})
		},
		func() {
			content, contentFb = timed(ctx, p, StageContent, emit, func() (models.ContentResult, bool) {
				return p.content.Analyze(ctx, question, transcription.Text)
			})
		},
	}

	if p.concurrent {
		var wg sync.WaitGroup
		for _, stage := range stages {
			wg.Add(1)
			go func() {
				defer wg.Done()
				stage()
			}()
		}
		wg.Wait()
	} else {
		for _, stage := range stages {
			stage()
		}
	}

	if err := ctx.Err(); err != nil {
		return models.FeedbackReport{}, err
	}
	anyFallback = anyFallback || grammarFb || confidenceFb || contentFb

	return models.Compose(question, transcription, grammar, confidence, content), nil
}

func timed[T any](ctx context.Context, p *Pipeline, stage Stage, emit func(Event), run func() (T, bool)) (T, bool) {
	emit(Event{Stage: stage, Status: StatusStarted})
	start := time.Now()
	result, fallback := run()
	p.recorder.StageCompleted(ctx, string(stage), time.Since(start), fallback)
	emit(Event{Stage: stage, Status: StatusCompleted, Fallback: fallback})
	return result, fallback
}
