package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Paths         PathsConfig         `yaml:"paths"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Voice         VoiceConfig         `yaml:"voice"`
	KeyPoints     KeyPointsConfig     `yaml:"key_points"`
	Podcast       PodcastConfig       `yaml:"podcast"`
	Meeting       MeetingConfig       `yaml:"meeting"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type PathsConfig struct {
	Uploads  string `yaml:"uploads"`
	Output   string `yaml:"output"`
	Temp     string `yaml:"temp"`
	Database string `yaml:"database"`
}

type TranscriptionConfig struct {
	BaseURL         string `yaml:"base_url"`
	PollIntervalSec int    `yaml:"poll_interval_sec"`
	TimeoutSec      int    `yaml:"timeout_sec"`
}

type VoiceConfig struct {
	Voice   string `yaml:"voice"`
	ModelID string `yaml:"model_id"`
}

type KeyPointsConfig struct {
	MaxPoints      int    `yaml:"max_points"`
	MinSentenceLen int    `yaml:"min_sentence_len"`
	GeminiModel    string `yaml:"gemini_model"`
}

type PodcastConfig struct {
	IntroTemplate   string  `yaml:"intro_template"`
	OutroTemplate   string  `yaml:"outro_template"`
	SegmentTemplate string  `yaml:"segment_template"`
	Bitrate         string  `yaml:"bitrate"`
	CrossfadeSec    float64 `yaml:"crossfade_sec"`
}

type MeetingConfig struct {
	BaseURL         string `yaml:"base_url"`
	Transport       string `yaml:"transport"`
	WSBaseURL       string `yaml:"ws_base_url"`
	PollIntervalSec int    `yaml:"poll_interval_sec"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Paths.Uploads == "" {
		return fmt.Errorf("paths.uploads is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Database == "" {
		c.Paths.Database = "data/podcasts.db"
	}
	if c.Transcription.BaseURL == "" {
		c.Transcription.BaseURL = "https://api.assemblyai.com"
	}
	if c.Transcription.PollIntervalSec == 0 {
		c.Transcription.PollIntervalSec = 3
	}
	if c.Transcription.TimeoutSec == 0 {
		c.Transcription.TimeoutSec = 600
	}
	if c.Voice.Voice == "" {
		c.Voice.Voice = "Rachel"
	}
	if c.Voice.ModelID == "" {
		c.Voice.ModelID = "eleven_monolingual_v1"
	}
	if c.KeyPoints.MaxPoints == 0 {
		c.KeyPoints.MaxPoints = 5
	}
	if c.KeyPoints.MinSentenceLen == 0 {
		c.KeyPoints.MinSentenceLen = 20
	}
	if c.KeyPoints.GeminiModel == "" {
		c.KeyPoints.GeminiModel = "gemini-2.5-flash"
	}
	if c.Podcast.IntroTemplate == "" {
		c.Podcast.IntroTemplate = "Welcome to this podcast about {title}. Here are the key highlights from this meeting."
	}
	if c.Podcast.OutroTemplate == "" {
		c.Podcast.OutroTemplate = "That concludes our podcast summary of {title}. Thank you for listening!"
	}
	if c.Podcast.SegmentTemplate == "" {
		c.Podcast.SegmentTemplate = "Key point {number}: {text}"
	}
	if c.Podcast.Bitrate == "" {
		c.Podcast.Bitrate = "192k"
	}
	if c.Meeting.BaseURL == "" {
		c.Meeting.BaseURL = "https://api.meetstream.ai/v1"
	}
	if c.Meeting.PollIntervalSec == 0 {
		c.Meeting.PollIntervalSec = 5
	}
	switch c.Meeting.Transport {
	case "":
		c.Meeting.Transport = "http"
	case "http", "websocket":
	default:
		return fmt.Errorf("meeting.transport must be http or websocket, got %q", c.Meeting.Transport)
	}
	if c.Meeting.Transport == "websocket" && c.Meeting.WSBaseURL == "" {
		c.Meeting.WSBaseURL = strings.Replace(c.Meeting.BaseURL, "http", "ws", 1)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
