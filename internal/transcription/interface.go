package transcription

import "context"

// Transcriber converts an audio file into transcript text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
