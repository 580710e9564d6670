package audio

import "context"

// Processor wraps the ffmpeg operations used to assemble podcast audio.
// Every method returns the path of the file it produced.
type Processor interface {
	ConvertToWAV(ctx context.Context, audioPath string) (string, error)
	ExtractSegment(ctx context.Context, audioPath string, startSec, endSec float64) (string, error)
	Normalize(ctx context.Context, audioPath string) (string, error)
	Denoise(ctx context.Context, audioPath string) (string, error)
	Concatenate(ctx context.Context, audioPaths []string, crossfadeSec float64) (string, error)
	ExportMP3(ctx context.Context, audioPath, bitrate string) (string, error)
	Silence(ctx context.Context, outputPath string, durationSec float64) error
	Duration(ctx context.Context, audioPath string) (float64, error)
}
