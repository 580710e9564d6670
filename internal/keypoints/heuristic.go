package keypoints

import (
	"context"
	"regexp"
	"strings"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

var reSentenceEnd = regexp.MustCompile(`[.!?]+\s+`)

type heuristicExtractor struct {
	maxPoints      int
	minSentenceLen int
	logger         logger.Logger
}

// NewHeuristic returns the positional extractor: every third sentence
// longer than minSentenceLen characters, capped at maxPoints.
func NewHeuristic(maxPoints, minSentenceLen int, log logger.Logger) Extractor {
	return &heuristicExtractor{
		maxPoints:      maxPoints,
		minSentenceLen: minSentenceLen,
		logger:         log.Named("keypoints"),
	}
}

func (h *heuristicExtractor) Extract(ctx context.Context, transcript string) ([]string, error) {
	sentences := splitSentences(transcript)

	var points []string
	for i, sentence := range sentences {
		if len(points) >= h.maxPoints {
			break
		}
		if i%3 == 0 && len(sentence) > h.minSentenceLen {
			points = append(points, sentence)
		}
	}

	h.logger.Info(ctx, "Extracted %d key points from %d sentences", len(points), len(sentences))
	return points, nil
}

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range reSentenceEnd.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, strings.TrimRight(s, ".!?"))
		}
	}
	return sentences
}
