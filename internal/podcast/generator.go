package podcast

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateFromFile orchestrates the full pipeline: transcribe, extract
// key points, narrate, assemble, and persist.
func (g *implGenerator) GenerateFromFile(ctx context.Context, audioPath, title string) (Podcast, error) {
	if err := g.sem.acquire(ctx); err != nil {
		return Podcast{}, err
	}
	defer g.sem.release()

	startTime := time.Now()
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	}

	g.logger.Info(ctx, "========================================")
	g.logger.Info(ctx, "Generating podcast: %s", title)
	g.logger.Info(ctx, "========================================")

	// Step 1: Convert to canonical WAV
	wavPath, err := g.processor.ConvertToWAV(ctx, audioPath)
	if err != nil {
		return Podcast{}, fmt.Errorf("convert to wav: %w", err)
	}

	// Step 2: Transcribe
	transcript, err := g.transcriber.Transcribe(ctx, wavPath)
	if err != nil {
		return Podcast{}, fmt.Errorf("transcribe: %w", err)
	}

	// Step 3: Extract key points
	points, err := g.extractor.Extract(ctx, transcript)
	if err != nil {
		return Podcast{}, fmt.Errorf("extract key points: %w", err)
	}
	if len(points) == 0 {
		return Podcast{}, fmt.Errorf("no key points extracted from transcript")
	}

	// Step 4: Narrate intro, segments, and outro
	intro := renderTemplate(g.cfg.Podcast.IntroTemplate, title, 0, "")
	outro := renderTemplate(g.cfg.Podcast.OutroTemplate, title, 0, "")

	workDir, err := os.MkdirTemp(g.cfg.Paths.Temp, "podcast-*")
	if err != nil {
		return Podcast{}, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	var audioFiles []string
	var keyPoints []KeyPoint

	introPath := filepath.Join(workDir, "intro.mp3")
	if err := g.synthesizer.Synthesize(ctx, intro, introPath); err != nil {
		g.logger.Warn(ctx, "Skipping intro narration: %v", err)
	} else {
		audioFiles = append(audioFiles, introPath)
	}

	for i, point := range points {
		narration := renderTemplate(g.cfg.Podcast.SegmentTemplate, title, i+1, point)
		segmentPath := filepath.Join(workDir, fmt.Sprintf("segment_%02d.mp3", i+1))

		if err := g.synthesizer.Synthesize(ctx, narration, segmentPath); err != nil {
			g.logger.Warn(ctx, "Skipping narration for key point %d: %v", i+1, err)
		} else {
			audioFiles = append(audioFiles, segmentPath)
		}

		keyPoints = append(keyPoints, KeyPoint{
			Title: fmt.Sprintf("Key Point %d", i+1),
			Text:  point,
		})
	}

	outroPath := filepath.Join(workDir, "outro.mp3")
	if err := g.synthesizer.Synthesize(ctx, outro, outroPath); err != nil {
		g.logger.Warn(ctx, "Skipping outro narration: %v", err)
	} else {
		audioFiles = append(audioFiles, outroPath)
	}

	if len(audioFiles) == 0 {
		return Podcast{}, fmt.Errorf("no narration segments produced")
	}

	// Step 5: Assemble the final audio
	concatPath, err := g.processor.Concatenate(ctx, audioFiles, g.cfg.Podcast.CrossfadeSec)
	if err != nil {
		return Podcast{}, fmt.Errorf("concatenate segments: %w", err)
	}

	normalizedPath, err := g.processor.Normalize(ctx, concatPath)
	if err != nil {
		g.logger.Warn(ctx, "Normalization failed, keeping raw concat: %v", err)
		normalizedPath = concatPath
	}

	denoisedPath, err := g.processor.Denoise(ctx, normalizedPath)
	if err != nil {
		g.logger.Warn(ctx, "Denoising failed, keeping normalized audio: %v", err)
		denoisedPath = normalizedPath
	}

	mp3Path, err := g.processor.ExportMP3(ctx, denoisedPath, g.cfg.Podcast.Bitrate)
	if err != nil {
		return Podcast{}, fmt.Errorf("export mp3: %w", err)
	}

	audioFile := fmt.Sprintf("podcast_%d.mp3", time.Now().Unix())
	finalPath := filepath.Join(g.cfg.Paths.Output, audioFile)
	if err := moveFile(mp3Path, finalPath); err != nil {
		return Podcast{}, fmt.Errorf("move podcast to output: %w", err)
	}

	duration, err := g.processor.Duration(ctx, finalPath)
	if err != nil {
		g.logger.Warn(ctx, "Could not probe final duration: %v", err)
	}

	if snippets := g.extractSnippets(ctx, wavPath, transcript, points, finalPath); len(snippets) > 0 {
		g.logger.Info(ctx, "Extracted %d source snippets", len(snippets))
	}

	p := Podcast{
		ID:          uuid.NewString(),
		Title:       title,
		CreatedAt:   time.Now().UTC(),
		Intro:       intro,
		Outro:       outro,
		KeyPoints:   keyPoints,
		AudioFile:   audioFile,
		DurationSec: duration,
	}

	// Step 6: Sidecar metadata and show notes next to the audio file
	if err := WriteSidecar(p, sidecarPath(finalPath)); err != nil {
		g.logger.Warn(ctx, "Failed to write metadata sidecar: %v", err)
	}
	if err := writeShowNotes(p, strings.TrimSuffix(finalPath, ".mp3")+".txt"); err != nil {
		g.logger.Warn(ctx, "Failed to write show notes: %v", err)
	}
	if err := writeShowNotesDocx(p, strings.TrimSuffix(finalPath, ".mp3")+".docx"); err != nil {
		g.logger.Warn(ctx, "Failed to write docx show notes: %v", err)
	}

	// Step 7: Persist for listing
	if err := g.store.Insert(ctx, p); err != nil {
		return Podcast{}, fmt.Errorf("persist podcast: %w", err)
	}

	g.logger.Info(ctx, "========================================")
	g.logger.Info(ctx, "Podcast generation complete: %s", finalPath)
	g.logger.Info(ctx, "Key points: %d, duration: %.1fs, elapsed: %s",
		len(keyPoints), duration, time.Since(startTime))
	g.logger.Info(ctx, "========================================")

	return p, nil
}

// renderTemplate substitutes the {title}, {number}, and {text} tokens.
func renderTemplate(tmpl, title string, number int, text string) string {
	out := strings.ReplaceAll(tmpl, "{title}", title)
	out = strings.ReplaceAll(out, "{number}", strconv.Itoa(number))
	out = strings.ReplaceAll(out, "{text}", text)
	return out
}

func sidecarPath(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".json"
}

// moveFile renames, falling back to copy for cross-device moves.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return os.Remove(src)
}
