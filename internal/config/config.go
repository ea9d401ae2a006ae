// Package config loads service configuration from defaults, an optional YAML
// file, a .env file and the process environment, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"InterviewPractice_FeedbackService/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Log           logger.Config       `mapstructure:"log"`
	Upload        UploadConfig        `mapstructure:"upload"`
	Audio         AudioConfig         `mapstructure:"audio"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Grammar       GrammarConfig       `mapstructure:"grammar"`
	LLM           LLMConfig           `mapstructure:"llm"`
	TTS           TTSConfig           `mapstructure:"tts"`
	History       HistoryConfig       `mapstructure:"history"`
	RateLimit     RateLimitConfig     `mapstructure:"ratelimit"`
	Analysis      AnalysisConfig      `mapstructure:"analysis"`
	Corpus        CorpusConfig        `mapstructure:"corpus"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	Env             string        `mapstructure:"env"`
	StaticDir       string        `mapstructure:"static_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ServeStatic reports whether the single-page bundle should be served.
func (s ServerConfig) ServeStatic() bool {
	return strings.EqualFold(s.Env, "production") && s.StaticDir != ""
}

type UploadConfig struct {
	MaxBytes int64  `mapstructure:"max_bytes"`
	TempDir  string `mapstructure:"temp_dir"`
}

type AudioConfig struct {
	FFmpegCommand string `mapstructure:"ffmpeg_command"`
	SampleRate    int    `mapstructure:"sample_rate"`
	Channels      int    `mapstructure:"channels"`
	Bitrate       string `mapstructure:"bitrate"`
}

type TranscriptionConfig struct {
	Provider   string             `mapstructure:"provider"`
	AssemblyAI AssemblyAIConfig   `mapstructure:"assemblyai"`
	Google     GoogleSpeechConfig `mapstructure:"google"`
}

type AssemblyAIConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type GoogleSpeechConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	LanguageCode    string `mapstructure:"language_code"`
}

type GrammarConfig struct {
	URL           string        `mapstructure:"url"`
	Language      string        `mapstructure:"language"`
	DisabledRules string        `mapstructure:"disabled_rules"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type TTSConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	CredentialsFile string `mapstructure:"credentials_file"`
	LanguageCode    string `mapstructure:"language_code"`
	Voice           string `mapstructure:"voice"`
}

type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	TTL               time.Duration `mapstructure:"ttl"`
}

type AnalysisConfig struct {
	Concurrent bool   `mapstructure:"concurrent"`
	Seed       uint64 `mapstructure:"seed"`
}

type CorpusConfig struct {
	File string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5001)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.static_dir", "../frontend/build")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logger.FormatConsole)
	v.SetDefault("log.no_color", false)

	v.SetDefault("upload.max_bytes", 10*1024*1024)
	v.SetDefault("upload.temp_dir", "./uploads")

	v.SetDefault("audio.ffmpeg_command", "ffmpeg -hide_banner -loglevel error")
	v.SetDefault("audio.sample_rate", 16000)
	v.SetDefault("audio.channels", 1)
	v.SetDefault("audio.bitrate", "128k")

	v.SetDefault("transcription.provider", "assemblyai")
	v.SetDefault("transcription.assemblyai.api_key", "")
	v.SetDefault("transcription.assemblyai.base_url", "https://api.assemblyai.com/v2")
	v.SetDefault("transcription.assemblyai.poll_interval", 3*time.Second)
	v.SetDefault("transcription.assemblyai.max_attempts", 10)
	v.SetDefault("transcription.assemblyai.timeout", 30*time.Second)
	v.SetDefault("transcription.google.credentials_file", "")
	v.SetDefault("transcription.google.language_code", "en-US")

	v.SetDefault("grammar.url", "https://api.languagetoolplus.com/v2/check")
	v.SetDefault("grammar.language", "en-US")
	v.SetDefault("grammar.disabled_rules", "WHITESPACE_RULE")
	v.SetDefault("grammar.timeout", 15*time.Second)

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://api.mistral.ai/v1")
	v.SetDefault("llm.model", "mistral-tiny")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetDefault("tts.enabled", false)
	v.SetDefault("tts.credentials_file", "")
	v.SetDefault("tts.language_code", "en-US")
	v.SetDefault("tts.voice", "en-US-Wavenet-D")

	v.SetDefault("history.limit", 50)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_second", 2.0)
	v.SetDefault("ratelimit.burst", 5)
	v.SetDefault("ratelimit.ttl", time.Hour)

	v.SetDefault("analysis.concurrent", true)
	v.SetDefault("analysis.seed", 0)

	v.SetDefault("corpus.file", "")
}

// bindWellKnownEnv maps the conventional variable names onto config keys.
// The first non-empty variable listed wins.
func bindWellKnownEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":                           {"SERVER_PORT", "PORT"},
		"server.env":                            {"SERVER_ENV", "NODE_ENV", "APP_ENV"},
		"llm.api_key":                           {"LLM_API_KEY", "MISTRAL_API_KEY"},
		"transcription.assemblyai.api_key":      {"TRANSCRIPTION_ASSEMBLYAI_API_KEY", "ASSEMBLYAI_API_KEY"},
		"transcription.google.credentials_file": {"TRANSCRIPTION_GOOGLE_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS"},
		"tts.credentials_file":                  {"TTS_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// Load builds the configuration. configFile and envFile are optional; a
// missing .env file is not an error.
func Load(configFile, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindWellKnownEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("upload.max_bytes must be positive"))
	}
	if c.Upload.TempDir == "" {
		errs = append(errs, fmt.Errorf("upload.temp_dir is required"))
	}
	if strings.TrimSpace(c.Audio.FFmpegCommand) == "" {
		errs = append(errs, fmt.Errorf("audio.ffmpeg_command is required"))
	}
	switch c.Transcription.Provider {
	case "assemblyai", "google":
	default:
		errs = append(errs, fmt.Errorf("transcription.provider must be assemblyai or google, got %q", c.Transcription.Provider))
	}
	if c.Transcription.AssemblyAI.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("transcription.assemblyai.max_attempts must be positive"))
	}
	if c.Transcription.AssemblyAI.PollInterval < 0 {
		errs = append(errs, fmt.Errorf("transcription.assemblyai.poll_interval must not be negative"))
	}
	if c.LLM.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("llm.max_tokens must be positive"))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, fmt.Errorf("llm.temperature must be between 0 and 2"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, fmt.Errorf("ratelimit requires positive requests_per_second and burst"))
	}
	if c.History.Limit <= 0 {
		errs = append(errs, fmt.Errorf("history.limit must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
