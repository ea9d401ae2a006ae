package llm

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"InterviewPractice_FeedbackService/internal/apperrors"
	"InterviewPractice_FeedbackService/internal/config"
	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/models"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

type speechAPI interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
	Close() error
}

// GoogleRecognizer transcribes a normalized WAV with a synchronous Cloud
// Speech Recognize call.
type GoogleRecognizer struct {
	client       speechAPI
	languageCode string
	sampleRate   int32
	channels     int32
	log          zerolog.Logger
}

func NewGoogleRecognizer(ctx context.Context, cfg config.GoogleSpeechConfig, audioCfg config.AudioConfig) (*GoogleRecognizer, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewGoogleRecognizer(): failed to create speech client: %w", err)
	}
	return newGoogleRecognizer(client, cfg.LanguageCode, audioCfg), nil
}

func newGoogleRecognizer(client speechAPI, languageCode string, audioCfg config.AudioConfig) *GoogleRecognizer {
	return &GoogleRecognizer{
		client:       client,
		languageCode: languageCode,
		sampleRate:   int32(audioCfg.SampleRate),
		channels:     int32(audioCfg.Channels),
		log:          logger.Component("google-stt"),
	}
}

func (r *GoogleRecognizer) Name() string { return "google" }

func (r *GoogleRecognizer) Transcribe(ctx context.Context, wavPath string) (*models.Transcription, error) {
	audioData, err := os.ReadFile(wavPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrAudioNotFound
		}
		return nil, fmt.Errorf("read audio: %w", err)
	}

	resp, err := r.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:              speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:       r.sampleRate,
			AudioChannelCount:     r.channels,
			LanguageCode:          r.languageCode,
			EnableWordTimeOffsets: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		r.log.Error().Err(err).Msg("Transcribe(): Recognize failed")
		return nil, apperrors.ExternalService(transcriptionService, err)
	}

	var (
		texts    []string
		words    = []models.Word{}
		language = r.languageCode
	)
	for _, result := range resp.GetResults() {
		if len(result.GetAlternatives()) == 0 {
			continue
		}
		if result.GetLanguageCode() != "" {
			language = result.GetLanguageCode()
		}
		best := result.GetAlternatives()[0]
		texts = append(texts, strings.TrimSpace(best.GetTranscript()))
		for _, w := range best.GetWords() {
			words = append(words, models.Word{
				Text:       w.GetWord(),
				Start:      w.GetStartTime().AsDuration().Milliseconds(),
				End:        w.GetEndTime().AsDuration().Milliseconds(),
				Confidence: float64(best.GetConfidence()),
			})
		}
	}

	r.log.Info().Int("results", len(resp.GetResults())).Int("words", len(words)).Msg("Transcribe(): recognized")
	return &models.Transcription{
		Text:     strings.Join(texts, " "),
		Segments: words,
		Language: language,
	}, nil
}

func (r *GoogleRecognizer) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
