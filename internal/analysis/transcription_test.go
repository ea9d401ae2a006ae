package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"InterviewPractice_FeedbackService/internal/apperrors"
	"InterviewPractice_FeedbackService/internal/llm"
	"InterviewPractice_FeedbackService/internal/models"
)

func TestTranscribeSuccessRemovesConvertedCopy(t *testing.T) {
	upload := writeUpload(t.TempDir())
	transcriber := &fakeTranscriber{result: &models.Transcription{Text: "Hello there", Language: "en"}}

	got := NewTranscriptionService(fakeNormalizer{}, transcriber).Transcribe(context.Background(), upload)
	if got.IsFallback || got.Text != "Hello there" {
		t.Fatalf("unexpected transcription %+v", got)
	}
	if got.Segments == nil {
		t.Fatal("segments should never be nil")
	}
	if transcriber.seen == "" || transcriber.seen == upload {
		t.Fatalf("transcriber should receive the converted copy, got %q", transcriber.seen)
	}
	if _, err := os.Stat(transcriber.seen); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("converted copy should be deleted, stat err: %v", err)
	}
}

func TestTranscribeNormalizerFailure(t *testing.T) {
	transcriber := &fakeTranscriber{}
	got := NewTranscriptionService(fakeNormalizer{err: errors.New("ffmpeg exploded")}, transcriber).
		Transcribe(context.Background(), writeUpload(t.TempDir()))

	assertFallback(t, got, msgProcessingFailed)
	if transcriber.seen != "" {
		t.Fatal("transcriber must not run when conversion failed")
	}
}

func TestTranscribeFallbackMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&llm.TranscriptionJobError{Message: "audio too short"}, "Transcription error: audio too short"},
		{fmt.Errorf("wrapped: %w", llm.ErrAudioNotFound), "Audio file not found"},
		{llm.ErrNoUploadURL, "Failed to upload audio"},
		{llm.ErrNoTranscriptID, "Failed to submit transcription job"},
		{llm.ErrTranscriptionTimeout, "Transcription timed out"},
		{apperrors.ExternalService("transcription service", errors.New("dial tcp: refused")), "Error during transcription"},
		{llm.ErrMissingAPIKey, "Error during transcription"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			svc := NewTranscriptionService(fakeNormalizer{}, &fakeTranscriber{err: tc.err})
			assertFallback(t, svc.Transcribe(context.Background(), writeUpload(t.TempDir())), tc.want)
		})
	}
}

func TestFallbackTranscriptionDefault(t *testing.T) {
	assertFallback(t, FallbackTranscription(""), FallbackTranscriptText)
}

func assertFallback(t *testing.T, got models.Transcription, text string) {
	t.Helper()
	if !got.IsFallback || got.Text != text || got.Language != "english" || got.Segments == nil || len(got.Segments) != 0 {
		t.Fatalf("unexpected fallback %+v, want text %q", got, text)
	}
}
