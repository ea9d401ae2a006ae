package audio

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"InterviewPractice_FeedbackService/internal/config"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeWAV(t *testing.T, path string, sampleRate, channels, samples int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:   make([]int, samples*channels),
	}
	for i := range buf.Data {
		buf.Data[i] = (i % 64) * 256
	}
	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath(filepath.Join("uploads", "1234-answer.webm"))
	want := filepath.Join("uploads", "converted-1234-answer.wav")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWAV(t, path, 16000, 1, 8000)

	info, err := Inspect(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.SampleRate != 16000 || info.Channels != 1 || info.BitDepth != 16 {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.Duration != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %v", info.Duration)
	}
}

func TestInspectRejectsNonWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("definitely not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Inspect(path); !errors.Is(err, ErrInvalidWAV) {
		t.Fatalf("expected ErrInvalidWAV, got %v", err)
	}
}

func TestNewFFmpegNormalizerParsesCommand(t *testing.T) {
	n, err := NewFFmpegNormalizer(config.AudioConfig{FFmpegCommand: `ffmpeg -hide_banner -loglevel "error"`, SampleRate: 16000, Channels: 1, Bitrate: "128k"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ffmpeg", "-hide_banner", "-loglevel", "error"}
	if len(n.cmd) != len(want) {
		t.Fatalf("unexpected args %v", n.cmd)
	}
	for i := range want {
		if n.cmd[i] != want[i] {
			t.Fatalf("unexpected args %v", n.cmd)
		}
	}

	if _, err := NewFFmpegNormalizer(config.AudioConfig{FFmpegCommand: "   "}); !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
}

func TestNormalizeFailsWithToolOutput(t *testing.T) {
	n, err := NewFFmpegNormalizer(config.AudioConfig{FFmpegCommand: "definitely-not-a-real-binary-xyz", SampleRate: 16000, Channels: 1, Bitrate: "128k"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := n.Normalize(context.Background(), filepath.Join(t.TempDir(), "in.webm")); err == nil {
		t.Fatal("expected an error for a missing binary")
	}
}

// fakeFFmpeg writes a script that puts "garbage" into its last argument and
// exits with the given code.
func fakeFFmpeg(t *testing.T, exitCode int) *FFmpegNormalizer {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs /bin/sh")
	}
	script := filepath.Join(t.TempDir(), "fake-ffmpeg.sh")
	body := "#!/bin/sh\nfor last; do :; done\necho garbage > \"$last\"\nexit " + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	n, err := NewFFmpegNormalizer(config.AudioConfig{FFmpegCommand: "'" + script + "'", SampleRate: 16000, Channels: 1, Bitrate: "128k"})
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestNormalizeRemovesRejectedOutput(t *testing.T) {
	for _, tc := range []struct {
		name     string
		exitCode int
	}{
		{"invalid wav", 0},
		{"ffmpeg error", 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			n := fakeFFmpeg(t, tc.exitCode)
			in := filepath.Join(t.TempDir(), "answer.webm")
			if err := os.WriteFile(in, []byte("webm"), 0o644); err != nil {
				t.Fatal(err)
			}

			if _, err := n.Normalize(context.Background(), in); err == nil {
				t.Fatal("expected an error")
			}
			if _, err := os.Stat(OutputPath(in)); !errors.Is(err, os.ErrNotExist) {
				t.Fatalf("converted file left behind: %v", err)
			}
			if _, err := os.Stat(in); err != nil {
				t.Fatalf("input must be left to the caller: %v", err)
			}
		})
	}
}

func TestNormalizeWithFFmpeg(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}

	dir := t.TempDir()
	in := filepath.Join(dir, "abc-answer.wav")
	writeWAV(t, in, 44100, 2, 44100)

	n, err := NewFFmpegNormalizer(config.AudioConfig{FFmpegCommand: "ffmpeg -hide_banner -loglevel error", SampleRate: 16000, Channels: 1, Bitrate: "128k"})
	if err != nil {
		t.Fatal(err)
	}
	out, err := n.Normalize(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != filepath.Join(dir, "converted-abc-answer.wav") {
		t.Fatalf("unexpected output path %s", out)
	}

	info, err := Inspect(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.SampleRate != 16000 || info.Channels != 1 {
		t.Fatalf("unexpected output format %+v", info)
	}
}
