package audio

import (
	"context"
	"strings"
	"testing"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

// fakeExecutor records invocations instead of spawning ffmpeg.
type fakeExecutor struct {
	calls  [][]string
	output string
	err    error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

func (f *fakeExecutor) Available(name string) bool { return true }

func (f *fakeExecutor) lastCall() []string {
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func newTestProcessor(exec *fakeExecutor) Processor {
	return New("/tmp", exec, logger.New("error"))
}

func hasArgPair(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestConvertToWAVSkipsWAVInput(t *testing.T) {
	exec := &fakeExecutor{}
	p := newTestProcessor(exec)

	out, err := p.ConvertToWAV(context.Background(), "/audio/meeting.wav")
	if err != nil {
		t.Fatalf("ConvertToWAV() error = %v", err)
	}
	if out != "/audio/meeting.wav" {
		t.Errorf("output = %v, want input path unchanged", out)
	}
	if len(exec.calls) != 0 {
		t.Errorf("ffmpeg invoked %d times, want 0", len(exec.calls))
	}
}

func TestConvertToWAVArgs(t *testing.T) {
	exec := &fakeExecutor{}
	p := newTestProcessor(exec)

	out, err := p.ConvertToWAV(context.Background(), "/audio/meeting.mp3")
	if err != nil {
		t.Fatalf("ConvertToWAV() error = %v", err)
	}
	if !strings.HasSuffix(out, "meeting.wav") {
		t.Errorf("output = %v, want *.wav", out)
	}

	args := exec.lastCall()
	if args[0] != "ffmpeg" {
		t.Errorf("binary = %v, want ffmpeg", args[0])
	}
	if !hasArgPair(args, "-c:a", "pcm_s16le") || !hasArgPair(args, "-ar", "44100") {
		t.Errorf("canonical WAV args missing: %v", args)
	}
}

func TestExtractSegmentArgs(t *testing.T) {
	exec := &fakeExecutor{}
	p := newTestProcessor(exec)

	if _, err := p.ExtractSegment(context.Background(), "/audio/full.wav", 30, 90.5); err != nil {
		t.Fatalf("ExtractSegment() error = %v", err)
	}

	args := exec.lastCall()
	if !hasArgPair(args, "-ss", "30") {
		t.Errorf("missing -ss 30: %v", args)
	}
	if !hasArgPair(args, "-to", "90.5") {
		t.Errorf("missing -to 90.5: %v", args)
	}
}

func TestConcatenate(t *testing.T) {
	tests := []struct {
		name       string
		paths      []string
		crossfade  float64
		wantFilter string
		wantErr    bool
	}{
		{
			name:    "no inputs",
			paths:   nil,
			wantErr: true,
		},
		{
			name:       "single input copies",
			paths:      []string{"/a.wav"},
			wantFilter: "",
		},
		{
			name:       "multiple inputs concat",
			paths:      []string{"/a.wav", "/b.wav", "/c.wav"},
			wantFilter: "[0:a][1:a][2:a]concat=n=3:v=0:a=1[out]",
		},
		{
			name:       "crossfade two inputs",
			paths:      []string{"/a.wav", "/b.wav"},
			crossfade:  0.5,
			wantFilter: "[0:a][1:a]acrossfade=d=0.5[out]",
		},
		{
			name:      "crossfade chains pairwise",
			paths:     []string{"/a.wav", "/b.wav", "/c.wav", "/d.wav"},
			crossfade: 0.5,
			wantFilter: "[0:a][1:a]acrossfade=d=0.5[x1];" +
				"[x1][2:a]acrossfade=d=0.5[x2];" +
				"[x2][3:a]acrossfade=d=0.5[out]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{}
			p := newTestProcessor(exec)

			_, err := p.Concatenate(context.Background(), tt.paths, tt.crossfade)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Concatenate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			args := exec.lastCall()
			if tt.wantFilter == "" {
				for _, a := range args {
					if a == "-filter_complex" {
						t.Errorf("single input should not use filter_complex: %v", args)
					}
				}
				return
			}
			if !hasArgPair(args, "-filter_complex", tt.wantFilter) {
				t.Errorf("filter = %v, want %v", args, tt.wantFilter)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    float64
		wantErr bool
	}{
		{"plain seconds", "182.476\n", 182.476, false},
		{"integer", "60", 60, false},
		{"garbage", "N/A", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{output: tt.output}
			p := newTestProcessor(exec)

			got, err := p.Duration(context.Background(), "/audio/podcast.mp3")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Duration() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}

			args := exec.lastCall()
			if args[0] != "ffprobe" {
				t.Errorf("binary = %v, want ffprobe", args[0])
			}
		})
	}
}

func TestSilenceArgs(t *testing.T) {
	exec := &fakeExecutor{}
	p := newTestProcessor(exec)

	if err := p.Silence(context.Background(), "/tmp/placeholder.wav", 2.4); err != nil {
		t.Fatalf("Silence() error = %v", err)
	}

	args := exec.lastCall()
	if !hasArgPair(args, "-i", "anullsrc=r=44100:cl=stereo") {
		t.Errorf("missing anullsrc input: %v", args)
	}
	if !hasArgPair(args, "-t", "2.4") {
		t.Errorf("missing -t 2.4: %v", args)
	}
}

func TestExportMP3Args(t *testing.T) {
	exec := &fakeExecutor{}
	p := newTestProcessor(exec)

	out, err := p.ExportMP3(context.Background(), "/out/podcast_final.wav", "192k")
	if err != nil {
		t.Fatalf("ExportMP3() error = %v", err)
	}
	if out != "/out/podcast_final.mp3" {
		t.Errorf("output = %v, want /out/podcast_final.mp3", out)
	}

	args := exec.lastCall()
	if !hasArgPair(args, "-c:a", "libmp3lame") || !hasArgPair(args, "-b:a", "192k") {
		t.Errorf("mp3 encode args missing: %v", args)
	}
}
