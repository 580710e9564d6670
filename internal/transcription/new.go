package transcription

import (
	"net/http"
	"time"

	"github.com/dharshini66/podcast-generator/internal/config"
	"github.com/dharshini66/podcast-generator/internal/logger"
)

// New returns an AssemblyAI-backed Transcriber, or the placeholder
// when no API key is configured.
func New(cfg config.TranscriptionConfig, apiKey string, log logger.Logger) Transcriber {
	if apiKey == "" {
		return NewPlaceholder(log)
	}

	return &implTranscriber{
		apiKey:       apiKey,
		baseURL:      cfg.BaseURL,
		pollInterval: time.Duration(cfg.PollIntervalSec) * time.Second,
		timeout:      time.Duration(cfg.TimeoutSec) * time.Second,
		httpClient:   &http.Client{Timeout: 120 * time.Second},
		logger:       log.Named("transcription"),
	}
}
