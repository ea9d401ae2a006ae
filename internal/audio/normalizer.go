// Package audio transcodes uploaded answers into the WAV layout the speech
// providers expect and inspects the result.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"InterviewPractice_FeedbackService/internal/config"
	"InterviewPractice_FeedbackService/internal/logger"

	"github.com/mattn/go-shellwords"
	"github.com/rs/zerolog"
)

var ErrEmptyCommand = errors.New("ffmpeg command is empty")

// FFmpegNormalizer runs ffmpeg as a subprocess to produce mono PCM WAV.
type FFmpegNormalizer struct {
	cmd        []string
	sampleRate int
	channels   int
	bitrate    string
	log        zerolog.Logger
}

func NewFFmpegNormalizer(cfg config.AudioConfig) (*FFmpegNormalizer, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(cfg.FFmpegCommand)
	if err != nil {
		return nil, fmt.Errorf("parse ffmpeg command: %w", err)
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}
	return &FFmpegNormalizer{
		cmd:        args,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		bitrate:    cfg.Bitrate,
		log:        logger.Component("audio"),
	}, nil
}

// OutputPath is where Normalize writes the converted copy of inputPath.
func OutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(inputPath), "converted-"+name+".wav")
}

// Normalize converts inputPath and returns the path of the WAV copy. The
// caller owns the returned file.
func (n *FFmpegNormalizer) Normalize(ctx context.Context, inputPath string) (string, error) {
	outputPath := OutputPath(inputPath)

	args := append([]string{}, n.cmd[1:]...)
	args = append(args,
		"-y", // overwrite
		"-i", inputPath,
		"-vn",
		"-ac", strconv.Itoa(n.channels),
		"-ar", strconv.Itoa(n.sampleRate),
		"-b:a", n.bitrate,
		"-f", "wav",
		outputPath,
	)

	cmd := exec.CommandContext(ctx, n.cmd[0], args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		n.log.Error().Err(err).Str("input", inputPath).Str("output", strings.TrimSpace(string(output))).
			Msg("Normalize(): ffmpeg failed")
		n.discard(outputPath)
		return "", fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(string(output)))
	}

	info, err := Inspect(outputPath)
	if err != nil {
		n.discard(outputPath)
		return "", err
	}
	n.log.Debug().Str("output", outputPath).Dur("duration", info.Duration).
		Int("sample_rate", info.SampleRate).Msg("Normalize(): converted")
	return outputPath, nil
}

// discard removes a partial or rejected output.
func (n *FFmpegNormalizer) discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		n.log.Warn().Err(err).Str("output", path).Msg("discard(): failed to delete converted audio")
	}
}
