package voice

import (
	"net/http"
	"time"

	"github.com/dharshini66/podcast-generator/internal/audio"
	"github.com/dharshini66/podcast-generator/internal/config"
	"github.com/dharshini66/podcast-generator/internal/logger"
)

// New returns an ElevenLabs-backed Synthesizer, or the silent
// placeholder when no API key is configured. baseURL overrides the
// public endpoint when non-empty.
func New(cfg config.VoiceConfig, apiKey, baseURL string, proc audio.Processor, log logger.Logger) Synthesizer {
	if apiKey == "" {
		return NewPlaceholder(proc, log)
	}

	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &implSynthesizer{
		apiKey:     apiKey,
		baseURL:    baseURL,
		voiceID:    VoiceID(cfg.Voice),
		modelID:    cfg.ModelID,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		processor:  proc,
		logger:     log.Named("voice"),
	}
}
