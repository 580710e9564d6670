package keypoints

import "context"

// Extractor selects the highlight sentences used as narration segments.
type Extractor interface {
	Extract(ctx context.Context, transcript string) ([]string, error)
}
