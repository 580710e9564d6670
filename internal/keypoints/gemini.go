package keypoints

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

const extractPrompt = `Extract the %d most important key points from this meeting transcript.
Format each key point as a single sentence on its own line that captures the main idea.
Do not number the lines and do not add any commentary.

Transcript:
---
%s
---`

type geminiExtractor struct {
	apiKeys   []string
	model     string
	maxPoints int
	fallback  Extractor
	logger    logger.Logger

	// One extractor is shared across concurrent pipeline runs, so the
	// rotation cursor needs the lock.
	mu         sync.Mutex
	currentKey int
}

// Extract asks Gemini for the key points. Any failure falls back to the
// positional heuristic so podcast generation never blocks on the LLM.
func (g *geminiExtractor) Extract(ctx context.Context, transcript string) ([]string, error) {
	text, err := g.generate(ctx, transcript)
	if err != nil {
		g.logger.Warn(ctx, "Gemini extraction failed, falling back to heuristic: %v", err)
		return g.fallback.Extract(ctx, transcript)
	}

	var points []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		if line == "" {
			continue
		}
		points = append(points, line)
		if len(points) >= g.maxPoints {
			break
		}
	}

	if len(points) == 0 {
		g.logger.Warn(ctx, "Gemini returned no usable key points, falling back to heuristic")
		return g.fallback.Extract(ctx, transcript)
	}

	g.logger.Info(ctx, "Extracted %d key points with Gemini", len(points))
	return points, nil
}

// generate calls Gemini, rotating API keys on quota errors.
func (g *geminiExtractor) generate(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(extractPrompt, g.maxPoints, transcript)

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		idx, key := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiExtractor) activeKey() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

func (g *geminiExtractor) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
