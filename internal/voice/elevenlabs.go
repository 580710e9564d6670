package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dharshini66/podcast-generator/internal/audio"
	"github.com/dharshini66/podcast-generator/internal/logger"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// Speech is assumed to run at roughly 200 words per minute when sizing
// the silent placeholder.
const secondsPerWord = 0.3

type implSynthesizer struct {
	apiKey     string
	baseURL    string
	voiceID    string
	modelID    string
	httpClient *http.Client
	processor  audio.Processor
	logger     logger.Logger
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize posts the text to ElevenLabs and writes the returned audio
// bytes to outputPath. On any failure it degrades to a silent placeholder
// sized to the text length, matching the rest of the pipeline's
// continue-with-placeholder policy.
func (s *implSynthesizer) Synthesize(ctx context.Context, text, outputPath string) error {
	if err := s.synthesize(ctx, text, outputPath); err != nil {
		s.logger.Error(ctx, "Voice synthesis failed, writing silence: %v", err)
		return s.writeSilence(ctx, text, outputPath)
	}
	return nil
}

func (s *implSynthesizer) synthesize(ctx context.Context, text, outputPath string) error {
	payload, err := json.Marshal(synthesizeRequest{
		Text:    text,
		ModelID: s.modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
		},
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return fmt.Errorf("write audio: %w", err)
	}

	s.logger.Info(ctx, "Generated %d bytes of narration: %s", n, outputPath)
	return nil
}

func (s *implSynthesizer) writeSilence(ctx context.Context, text, outputPath string) error {
	return s.processor.Silence(ctx, outputPath, estimateDuration(text))
}

func estimateDuration(text string) float64 {
	words := len(bytes.Fields([]byte(text)))
	dur := float64(words) * secondsPerWord
	if dur < 1 {
		dur = 1
	}
	return dur
}
