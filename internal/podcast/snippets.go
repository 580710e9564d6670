package podcast

import (
	"context"
	"fmt"
	"strings"
)

// snippetPaddingSec extends each snippet past the key point so the
// sentence is not clipped mid-word.
const snippetPaddingSec = 2.0

// extractSnippets cuts a cleaned-up clip out of the source recording
// for each key point and saves it next to the narrated podcast. The
// transcript carries no timestamps, so positions are estimated from
// word offsets scaled to the probed recording length. Everything here
// degrades with a warning; snippets never fail a pipeline run.
func (g *implGenerator) extractSnippets(ctx context.Context, wavPath, transcript string, points []string, finalPath string) []string {
	duration, err := g.processor.Duration(ctx, wavPath)
	if err != nil {
		g.logger.Warn(ctx, "Skipping snippets, could not probe source duration: %v", err)
		return nil
	}

	totalWords := len(strings.Fields(transcript))
	if totalWords == 0 || duration <= 0 {
		return nil
	}

	base := strings.TrimSuffix(finalPath, ".mp3")
	var snippets []string

	for i, point := range points {
		offset := strings.Index(transcript, point)
		if offset < 0 {
			g.logger.Debug(ctx, "Key point %d not found verbatim in transcript, skipping snippet", i+1)
			continue
		}

		wordsBefore := len(strings.Fields(transcript[:offset]))
		pointWords := len(strings.Fields(point))

		start := float64(wordsBefore) / float64(totalWords) * duration
		end := float64(wordsBefore+pointWords)/float64(totalWords)*duration + snippetPaddingSec
		if end > duration {
			end = duration
		}
		if end <= start {
			continue
		}

		segPath, err := g.processor.ExtractSegment(ctx, wavPath, start, end)
		if err != nil {
			g.logger.Warn(ctx, "Snippet %d extraction failed: %v", i+1, err)
			continue
		}
		if normalized, err := g.processor.Normalize(ctx, segPath); err != nil {
			g.logger.Warn(ctx, "Snippet %d normalization failed, keeping raw cut: %v", i+1, err)
		} else {
			segPath = normalized
		}
		if denoised, err := g.processor.Denoise(ctx, segPath); err != nil {
			g.logger.Warn(ctx, "Snippet %d denoising failed: %v", i+1, err)
		} else {
			segPath = denoised
		}

		dst := fmt.Sprintf("%s_snippet_%02d.wav", base, i+1)
		if err := moveFile(segPath, dst); err != nil {
			g.logger.Warn(ctx, "Snippet %d move failed: %v", i+1, err)
			continue
		}
		snippets = append(snippets, dst)
	}

	return snippets
}
