package keypoints

import (
	"github.com/dharshini66/podcast-generator/internal/config"
	"github.com/dharshini66/podcast-generator/internal/logger"
)

// New picks the best available extractor: Gemini when API keys are
// configured, otherwise the positional heuristic alone.
func New(cfg config.KeyPointsConfig, apiKeys []string, log logger.Logger) Extractor {
	heuristic := NewHeuristic(cfg.MaxPoints, cfg.MinSentenceLen, log)
	if len(apiKeys) == 0 {
		return heuristic
	}

	return &geminiExtractor{
		apiKeys:   apiKeys,
		model:     cfg.GeminiModel,
		maxPoints: cfg.MaxPoints,
		fallback:  heuristic,
		logger:    log.Named("keypoints"),
	}
}
