package transcription

import (
	"context"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

const placeholderTranscript = "This is a placeholder transcript. The actual transcription would appear here."

type placeholderTranscriber struct {
	logger logger.Logger
}

// NewPlaceholder returns a Transcriber that produces a canned transcript.
// Used when no speech-to-text credentials are configured so the rest of
// the pipeline stays exercisable.
func NewPlaceholder(log logger.Logger) Transcriber {
	return &placeholderTranscriber{logger: log}
}

func (p *placeholderTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	p.logger.Warn(ctx, "No transcription API key configured, using placeholder transcript for %s", audioPath)
	return placeholderTranscript, nil
}
