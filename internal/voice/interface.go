package voice

import "context"

// Synthesizer turns narration text into an audio file at outputPath.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outputPath string) error
}
