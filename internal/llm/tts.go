package llm

import (
	"context"
	"fmt"

	"InterviewPractice_FeedbackService/internal/config"
	"InterviewPractice_FeedbackService/internal/logger"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

type ttsAPI interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// TTSClient renders question text to speech.
type TTSClient struct {
	client       ttsAPI
	languageCode string
	voice        string
	sampleRate   int32
	log          zerolog.Logger
}

func NewTTSClient(ctx context.Context, cfg config.TTSConfig, sampleRate int) (*TTSClient, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewTTSClient(): failed to create TTS client: %w", err)
	}
	return newTTSClient(client, cfg, sampleRate), nil
}

func newTTSClient(client ttsAPI, cfg config.TTSConfig, sampleRate int) *TTSClient {
	return &TTSClient{
		client:       client,
		languageCode: cfg.LanguageCode,
		voice:        cfg.Voice,
		sampleRate:   int32(sampleRate),
		log:          logger.Component("tts"),
	}
}

// Synthesize returns LINEAR16 audio. Google wraps it in a WAV header, so the
// bytes can be served as audio/wav as they are.
func (t *TTSClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: t.languageCode,
			Name:         t.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SampleRateHertz: t.sampleRate,
		},
	}

	resp, err := t.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		t.log.Error().Err(err).Msg("Synthesize(): SynthesizeSpeech failed")
		return nil, err
	}

	t.log.Debug().Int("bytes", len(resp.GetAudioContent())).Msg("Synthesize(): done")
	return resp.GetAudioContent(), nil
}

func (t *TTSClient) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
