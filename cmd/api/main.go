package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"InterviewPractice_FeedbackService/internal/analysis"
	"InterviewPractice_FeedbackService/internal/audio"
	"InterviewPractice_FeedbackService/internal/config"
	"InterviewPractice_FeedbackService/internal/handler"
	"InterviewPractice_FeedbackService/internal/interview"
	"InterviewPractice_FeedbackService/internal/llm"
	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/metrics"
	"InterviewPractice_FeedbackService/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const serviceName = "interview-feedback"

// @title        Interview Practice Feedback API
// @version      1.0
// @description  Analyzes recorded interview answers and returns grammar, confidence and content feedback.
// @BasePath     /
func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	envFile := flag.String("env", ".env", "path to a .env file")
	flag.Parse()

	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	corpus := interview.DefaultCorpus()
	if cfg.Corpus.File != "" {
		loaded, err := interview.LoadCorpus(cfg.Corpus.File)
		if err != nil {
			return err
		}
		corpus = loaded
		log.Info().Str("file", cfg.Corpus.File).Msg("loaded interview corpus")
	}
	bank, err := interview.NewBank(corpus.Questions)
	if err != nil {
		return err
	}

	normalizer, err := audio.NewFFmpegNormalizer(cfg.Audio)
	if err != nil {
		return err
	}

	var transcriber analysis.Transcriber
	switch strings.ToLower(cfg.Transcription.Provider) {
	case "google":
		recognizer, err := llm.NewGoogleRecognizer(ctx, cfg.Transcription.Google, cfg.Audio)
		if err != nil {
			return err
		}
		defer recognizer.Close()
		transcriber = recognizer
	default:
		transcriber = llm.NewAssemblyAI(cfg.Transcription.AssemblyAI)
	}

	chat := llm.NewChatClient(cfg.LLM)
	if !chat.Configured() {
		log.Warn().Msg("no LLM API key configured, content feedback uses keyword heuristics")
	}

	rnd := analysis.NewRandom(cfg.Analysis.Seed)
	grammar, err := analysis.NewGrammarAnalyzer(llm.NewLanguageTool(cfg.Grammar), corpus.GrammarRules, rnd)
	if err != nil {
		return err
	}
	confidence := analysis.NewConfidenceAnalyzer(corpus.FillerWords, rnd)
	content := analysis.NewContentAnalyzer(chat, corpus.StopWords)

	telemetry, err := metrics.Setup(serviceName, cfg.Server.Env)
	if err != nil {
		return err
	}
	defer telemetry.Shutdown(context.Background())
	recorder, err := metrics.NewRecorder(telemetry.Provider)
	if err != nil {
		return err
	}

	opts := []analysis.PipelineOption{analysis.WithRecorder(recorder)}
	if !cfg.Analysis.Concurrent {
		opts = append(opts, analysis.WithSequential())
	}
	pipeline := analysis.NewPipeline(analysis.NewTranscriptionService(normalizer, transcriber), grammar, confidence, content, opts...)

	history, err := storage.NewHistoryStore(ctx, cfg.History.Limit)
	if err != nil {
		return err
	}
	defer history.Close()

	handlerOpts := handler.Options{
		Analyzer:              pipeline,
		Questions:             bank,
		History:               history,
		UploadDir:             cfg.Upload.TempDir,
		MaxUploadBytes:        cfg.Upload.MaxBytes,
		TranscriptionProvider: transcriber.Name(),
		ContentLLM:            chat.Configured(),
	}
	if cfg.TTS.Enabled {
		tts, err := llm.NewTTSClient(ctx, cfg.TTS, cfg.Audio.SampleRate)
		if err != nil {
			log.Warn().Err(err).Msg("question narration disabled")
		} else {
			defer tts.Close()
			handlerOpts.Speech = tts
		}
	}

	if err := os.MkdirAll(cfg.Upload.TempDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	routerOpts := handler.RouterOptions{
		RateLimit: cfg.RateLimit,
		Metrics:   telemetry.Handler,
		Log:       logger.Component("http"),
	}
	if cfg.Server.ServeStatic() {
		routerOpts.StaticDir = cfg.Server.StaticDir
	}
	router := handler.NewRouter(handler.New(handlerOpts), routerOpts)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("env", cfg.Server.Env).
			Str("transcription", transcriber.Name()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
