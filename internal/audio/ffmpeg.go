package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Podcast output is 44.1kHz stereo PCM until the final MP3 export.
var wavArgs = []string{"-c:a", "pcm_s16le", "-ar", "44100", "-ac", "2"}

func (p *implProcessor) tempPath(base, suffix string) string {
	name := strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	return filepath.Join(p.tempDir, name+suffix+".wav")
}

// ConvertToWAV converts an audio file to canonical WAV. Files that are
// already WAV are returned untouched.
func (p *implProcessor) ConvertToWAV(ctx context.Context, audioPath string) (string, error) {
	if strings.EqualFold(filepath.Ext(audioPath), ".wav") {
		return audioPath, nil
	}

	outputPath := p.tempPath(audioPath, "")

	args := []string{"-i", audioPath}
	args = append(args, wavArgs...)
	args = append(args, "-y", outputPath)

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert to wav: %w", err)
	}

	p.logger.Info(ctx, "Converted to WAV: %s", outputPath)
	return outputPath, nil
}

// ExtractSegment cuts [startSec, endSec] out of an audio file.
func (p *implProcessor) ExtractSegment(ctx context.Context, audioPath string, startSec, endSec float64) (string, error) {
	outputPath := p.tempPath(audioPath, fmt.Sprintf("_%d_%d", int(startSec), int(endSec)))

	args := []string{
		"-ss", formatSeconds(startSec),
		"-to", formatSeconds(endSec),
		"-i", audioPath,
	}
	args = append(args, wavArgs...)
	args = append(args, "-y", outputPath)

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract segment: %w", err)
	}

	p.logger.Info(ctx, "Extracted segment %.1f-%.1fs: %s", startSec, endSec, outputPath)
	return outputPath, nil
}

// Normalize applies EBU loudness normalization targeting -18 LUFS.
func (p *implProcessor) Normalize(ctx context.Context, audioPath string) (string, error) {
	outputPath := p.tempPath(audioPath, "_normalized")

	args := []string{
		"-i", audioPath,
		"-af", "loudnorm=I=-18:LRA=7:TP=-2",
	}
	args = append(args, wavArgs...)
	args = append(args, "-y", outputPath)

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg normalize: %w", err)
	}

	p.logger.Info(ctx, "Normalized audio: %s", outputPath)
	return outputPath, nil
}

// Denoise applies light FFT denoising to cut meeting-room background noise.
func (p *implProcessor) Denoise(ctx context.Context, audioPath string) (string, error) {
	outputPath := p.tempPath(audioPath, "_denoised")

	args := []string{
		"-i", audioPath,
		"-af", "afftdn=nr=2:nf=-25",
	}
	args = append(args, wavArgs...)
	args = append(args, "-y", outputPath)

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg denoise: %w", err)
	}

	p.logger.Info(ctx, "Denoised audio: %s", outputPath)
	return outputPath, nil
}

// Concatenate joins audio files in order, optionally crossfading the seams.
func (p *implProcessor) Concatenate(ctx context.Context, audioPaths []string, crossfadeSec float64) (string, error) {
	if len(audioPaths) == 0 {
		return "", fmt.Errorf("no audio files to concatenate")
	}

	outputPath := filepath.Join(p.tempDir,
		fmt.Sprintf("concatenated_%s.wav", time.Now().Format("20060102_150405")))

	if len(audioPaths) == 1 {
		args := []string{"-i", audioPaths[0]}
		args = append(args, wavArgs...)
		args = append(args, "-y", outputPath)
		if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
			return "", fmt.Errorf("ffmpeg copy single input: %w", err)
		}
		return outputPath, nil
	}

	var args []string
	for _, path := range audioPaths {
		args = append(args, "-i", path)
	}

	args = append(args, "-filter_complex", concatFilter(len(audioPaths), crossfadeSec), "-map", "[out]")
	args = append(args, wavArgs...)
	args = append(args, "-y", outputPath)

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg concatenate: %w", err)
	}

	p.logger.Info(ctx, "Concatenated %d audio files: %s", len(audioPaths), outputPath)
	return outputPath, nil
}

// ExportMP3 encodes the file as MP3 next to the source.
func (p *implProcessor) ExportMP3(ctx context.Context, audioPath, bitrate string) (string, error) {
	outputPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".mp3"

	args := []string{
		"-i", audioPath,
		"-c:a", "libmp3lame",
		"-b:a", bitrate,
		"-ar", "44100",
		"-ac", "2",
		"-y", outputPath,
	}

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg export mp3: %w", err)
	}

	p.logger.Info(ctx, "Exported MP3: %s", outputPath)
	return outputPath, nil
}

// Silence writes silent audio of the given duration. Used as the
// narration placeholder when no TTS credentials are configured. The
// codec follows the output extension so .mp3 placeholders stay valid.
func (p *implProcessor) Silence(ctx context.Context, outputPath string, durationSec float64) error {
	args := []string{
		"-f", "lavfi",
		"-i", "anullsrc=r=44100:cl=stereo",
		"-t", formatSeconds(durationSec),
	}
	if strings.EqualFold(filepath.Ext(outputPath), ".mp3") {
		args = append(args, "-c:a", "libmp3lame", "-ar", "44100", "-ac", "2")
	} else {
		args = append(args, wavArgs...)
	}
	args = append(args, "-y", outputPath)

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg silence: %w", err)
	}

	p.logger.Debug(ctx, "Created %.1fs of silence: %s", durationSec, outputPath)
	return nil
}

// Duration probes an audio file and returns its length in seconds.
func (p *implProcessor) Duration(ctx context.Context, audioPath string) (float64, error) {
	out, err := p.executor.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	dur, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(out), err)
	}

	return dur, nil
}

// concatFilter builds the filter_complex joining n inputs into [out].
// acrossfade takes exactly two input pads, so crossfaded joins are
// chained pairwise instead of appended after concat.
func concatFilter(n int, crossfadeSec float64) string {
	var filter strings.Builder

	if crossfadeSec <= 0 {
		for i := 0; i < n; i++ {
			fmt.Fprintf(&filter, "[%d:a]", i)
		}
		fmt.Fprintf(&filter, "concat=n=%d:v=0:a=1[out]", n)
		return filter.String()
	}

	fade := formatSeconds(crossfadeSec)
	prev := "[0:a]"
	for i := 1; i < n; i++ {
		out := fmt.Sprintf("[x%d]", i)
		if i == n-1 {
			out = "[out]"
		}
		if i > 1 {
			filter.WriteString(";")
		}
		fmt.Fprintf(&filter, "%s[%d:a]acrossfade=d=%s%s", prev, i, fade, out)
		prev = out
	}
	return filter.String()
}

func formatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}
