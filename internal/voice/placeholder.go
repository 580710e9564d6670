package voice

import (
	"context"

	"github.com/dharshini66/podcast-generator/internal/audio"
	"github.com/dharshini66/podcast-generator/internal/logger"
)

type placeholderSynthesizer struct {
	processor audio.Processor
	logger    logger.Logger
}

// NewPlaceholder returns a Synthesizer that writes silence sized to the
// narration text. Used when no TTS credentials are configured.
func NewPlaceholder(proc audio.Processor, log logger.Logger) Synthesizer {
	return &placeholderSynthesizer{processor: proc, logger: log.Named("voice")}
}

func (p *placeholderSynthesizer) Synthesize(ctx context.Context, text, outputPath string) error {
	p.logger.Warn(ctx, "No TTS API key configured, writing silent placeholder: %s", outputPath)
	return p.processor.Silence(ctx, outputPath, estimateDuration(text))
}
