package analysis

import (
	"context"
	"errors"
	"os"

	"InterviewPractice_FeedbackService/internal/llm"
	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/rs/zerolog"
)

const (
	FallbackTranscriptText = "I couldn't clearly capture what you said. Please try speaking more clearly and ensure your microphone is working properly."
	FallbackLanguage       = "english"

	msgProcessingFailed = "There was an error processing your audio. Please try again."
	msgAudioNotFound    = "Audio file not found"
	msgUploadFailed     = "Failed to upload audio"
	msgSubmitFailed     = "Failed to submit transcription job"
	msgTimedOut         = "Transcription timed out"
	msgTranscribeFailed = "Error during transcription"
)

type Normalizer interface {
	Normalize(ctx context.Context, inputPath string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) (*models.Transcription, error)
	Name() string
}

// FallbackTranscription is the placeholder used when no transcript could be
// produced. An empty message selects the generic apology.
func FallbackTranscription(message string) models.Transcription {
	if message == "" {
		message = FallbackTranscriptText
	}
	return models.Transcription{
		Text:       message,
		Segments:   []models.Word{},
		Language:   FallbackLanguage,
		IsFallback: true,
	}
}

// TranscriptionService normalizes an upload and transcribes it. It never
// fails: every error becomes a fallback transcription.
type TranscriptionService struct {
	normalizer  Normalizer
	transcriber Transcriber
	log         zerolog.Logger
}

func NewTranscriptionService(normalizer Normalizer, transcriber Transcriber) *TranscriptionService {
	return &TranscriptionService{
		normalizer:  normalizer,
		transcriber: transcriber,
		log:         logger.Component("transcription"),
	}
}

func (s *TranscriptionService) Transcribe(ctx context.Context, audioPath string) models.Transcription {
	converted, err := s.normalizer.Normalize(ctx, audioPath)
	if err != nil {
		s.log.Error().Err(err).Str("path", audioPath).Msg("Transcribe(): audio conversion failed")
		return FallbackTranscription(msgProcessingFailed)
	}
	defer func() {
		if err := os.Remove(converted); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", converted).Msg("Transcribe(): failed to delete converted audio")
		}
	}()

	result, err := s.transcriber.Transcribe(ctx, converted)
	if err != nil {
		s.log.Warn().Err(err).Str("provider", s.transcriber.Name()).Msg("Transcribe(): using fallback transcription")
		return FallbackTranscription(fallbackMessage(err))
	}
	if result.Segments == nil {
		result.Segments = []models.Word{}
	}
	s.log.Info().Str("provider", s.transcriber.Name()).Int("words", len(result.Segments)).Msg("Transcribe(): completed")
	return *result
}

func fallbackMessage(err error) string {
	var jobErr *llm.TranscriptionJobError
	switch {
	case errors.As(err, &jobErr):
		return "Transcription error: " + jobErr.Message
	case errors.Is(err, llm.ErrAudioNotFound):
		return msgAudioNotFound
	case errors.Is(err, llm.ErrNoUploadURL):
		return msgUploadFailed
	case errors.Is(err, llm.ErrNoTranscriptID):
		return msgSubmitFailed
	case errors.Is(err, llm.ErrTranscriptionTimeout):
		return msgTimedOut
	default:
		return msgTranscribeFailed
	}
}
