package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"InterviewPractice_FeedbackService/internal/apperrors"
	"InterviewPractice_FeedbackService/internal/config"
	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/rs/zerolog"
)

const transcriptionService = "transcription service"

var (
	ErrAudioNotFound        = errors.New("audio file not found")
	ErrMissingAPIKey        = errors.New("transcription API key is not configured")
	ErrNoUploadURL          = errors.New("upload response carried no upload_url")
	ErrNoTranscriptID       = errors.New("transcript response carried no id")
	ErrTranscriptionTimeout = errors.New("transcription timed out")
)

// TranscriptionJobError is returned when the remote job finished in the
// error state.
type TranscriptionJobError struct {
	Message string
}

func (e *TranscriptionJobError) Error() string {
	return "transcription error: " + e.Message
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL          string `json:"audio_url"`
	LanguageDetection bool   `json:"language_detection"`
}

type transcriptResponse struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	Text         string        `json:"text"`
	Words        []models.Word `json:"words"`
	LanguageCode string        `json:"language_code"`
	Error        string        `json:"error"`
}

// AssemblyAI transcribes a file with the upload, submit, poll protocol.
type AssemblyAI struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	maxAttempts  int
	httpClient   *http.Client
	log          zerolog.Logger
}

func NewAssemblyAI(cfg config.AssemblyAIConfig) *AssemblyAI {
	return &AssemblyAI{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		pollInterval: cfg.PollInterval,
		maxAttempts:  cfg.MaxAttempts,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		log:          logger.Component("assemblyai"),
	}
}

func (a *AssemblyAI) Name() string { return "assemblyai" }

func (a *AssemblyAI) Transcribe(ctx context.Context, wavPath string) (*models.Transcription, error) {
	if a.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	audioData, err := os.ReadFile(wavPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.log.Error().Str("path", wavPath).Msg("Transcribe(): audio file not found")
			return nil, ErrAudioNotFound
		}
		return nil, fmt.Errorf("read audio: %w", err)
	}
	a.log.Info().Int("bytes", len(audioData)).Msg("Transcribe(): uploading audio")

	var uploaded uploadResponse
	if err := a.do(ctx, http.MethodPost, "/upload", "application/octet-stream", bytes.NewReader(audioData), &uploaded); err != nil {
		return nil, err
	}
	if uploaded.UploadURL == "" {
		return nil, ErrNoUploadURL
	}

	reqBody, err := json.Marshal(transcriptRequest{AudioURL: uploaded.UploadURL, LanguageDetection: true})
	if err != nil {
		return nil, fmt.Errorf("marshal transcript request: %w", err)
	}
	var job transcriptResponse
	if err := a.do(ctx, http.MethodPost, "/transcript", "application/json", bytes.NewReader(reqBody), &job); err != nil {
		return nil, err
	}
	if job.ID == "" {
		return nil, ErrNoTranscriptID
	}
	a.log.Info().Str("transcript_id", job.ID).Msg("Transcribe(): job submitted")

	return a.poll(ctx, job.ID)
}

func (a *AssemblyAI) poll(ctx context.Context, id string) (*models.Transcription, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		var status transcriptResponse
		if err := a.do(ctx, http.MethodGet, "/transcript/"+id, "", nil, &status); err != nil {
			return nil, err
		}
		a.log.Debug().Int("attempt", attempt).Str("status", status.Status).Msg("poll(): transcription status")

		switch status.Status {
		case "completed":
			language := status.LanguageCode
			if language == "" {
				language = "en"
			}
			words := status.Words
			if words == nil {
				words = []models.Word{}
			}
			return &models.Transcription{Text: status.Text, Segments: words, Language: language}, nil
		case "error":
			return nil, &TranscriptionJobError{Message: status.Error}
		}

		if attempt == a.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.pollInterval):
		}
	}
	a.log.Warn().Str("transcript_id", id).Msg("poll(): transcription timed out")
	return nil, ErrTranscriptionTimeout
}

func (a *AssemblyAI) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", a.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return apperrors.ExternalService(transcriptionService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.ExternalService(transcriptionService, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("do(): unexpected response")
		return apperrors.ExternalService(transcriptionService,
			fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, truncate(raw, 512)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.ExternalService(transcriptionService, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}
