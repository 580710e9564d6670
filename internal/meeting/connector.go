package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

const streamChunkSize = 16 * 1024

// Status is the snapshot reported while a meeting is connected.
type Status struct {
	Connected        bool   `json:"connected"`
	MeetingID        string `json:"meeting_id,omitempty"`
	Topic            string `json:"topic,omitempty"`
	Recording        bool   `json:"recording"`
	TranscriptChunks int    `json:"transcript_chunks"`
	AudioBytes       int    `json:"audio_bytes"`
}

// RecordingResult points at the files written when recording stops.
type RecordingResult struct {
	AudioPath      string `json:"audio_path"`
	TranscriptPath string `json:"transcript_path"`
}

// Connector tracks at most one joined meeting and its recording
// session. Recording runs in a background goroutine; completion is
// observed by polling Status, matching how the HTTP surface works.
type Connector struct {
	api          API
	tempDir      string
	pollInterval time.Duration
	logger       logger.Logger

	mu        sync.Mutex
	current   *Meeting
	recording bool
	cancel    context.CancelFunc
	done      chan struct{}
	audio     bytes.Buffer
	segments  []TranscriptSegment
}

// NewConnector creates a Connector writing recordings into tempDir.
func NewConnector(api API, tempDir string, pollInterval time.Duration, log logger.Logger) *Connector {
	return &Connector{
		api:          api,
		tempDir:      tempDir,
		pollInterval: pollInterval,
		logger:       log.Named("meeting"),
	}
}

// Join connects to a meeting by ID or URL.
func (c *Connector) Join(ctx context.Context, meetingID, meetingURL string) (Meeting, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		return Meeting{}, fmt.Errorf("already connected to meeting %s", c.current.MeetingID)
	}

	m, err := c.api.Join(ctx, meetingID, meetingURL)
	if err != nil {
		return Meeting{}, err
	}

	c.current = &m
	return m, nil
}

// StartRecording launches the background recording goroutine.
func (c *Connector) StartRecording(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return fmt.Errorf("not connected to any meeting")
	}
	if c.recording {
		return fmt.Errorf("recording already in progress")
	}

	stream, err := c.api.OpenStream(ctx, *c.current)
	if err != nil {
		return fmt.Errorf("start recording: %w", err)
	}

	recCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.recording = true
	c.cancel = cancel
	c.done = make(chan struct{})
	c.audio.Reset()
	c.segments = nil

	go c.record(recCtx, *c.current, stream)

	c.logger.Info(ctx, "Recording started for meeting %s", c.current.MeetingID)
	return nil
}

// record drains the audio stream and polls the transcript endpoint
// until cancelled or the stream ends.
func (c *Connector) record(ctx context.Context, m Meeting, stream io.ReadCloser) {
	defer close(c.done)
	defer stream.Close()
	defer func() {
		c.mu.Lock()
		c.recording = false
		c.mu.Unlock()
	}()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	buf := make([]byte, streamChunkSize)
	readErr := make(chan error, 1)

	go func() {
		for {
			n, err := stream.Read(buf)
			if n > 0 {
				c.mu.Lock()
				c.audio.Write(buf[:n])
				c.mu.Unlock()
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-readErr:
			if err != io.EOF {
				c.logger.Error(ctx, "Audio stream failed: %v", err)
			}
			return
		case <-ticker.C:
			c.pollTranscript(ctx, m)
		}
	}
}

func (c *Connector) pollTranscript(ctx context.Context, m Meeting) {
	segments, err := c.api.Transcript(ctx, m)
	if err != nil {
		c.logger.Warn(ctx, "Transcript poll failed: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(c.segments))
	for _, s := range c.segments {
		seen[segmentKey(s)] = true
	}
	for _, s := range segments {
		if !seen[segmentKey(s)] {
			c.segments = append(c.segments, s)
		}
	}
}

func segmentKey(s TranscriptSegment) string {
	return fmt.Sprintf("%s|%.3f|%s", s.Speaker, s.StartTime, s.Text)
}

// StopRecording stops the session and writes the captured audio and
// transcript to disk.
func (c *Connector) StopRecording() (RecordingResult, error) {
	c.mu.Lock()
	if !c.recording {
		c.mu.Unlock()
		return RecordingResult{}, fmt.Errorf("no recording in progress")
	}
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		c.logger.Warn(context.Background(), "Recording goroutine slow to stop, writing what was captured")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	timestamp := time.Now().Unix()
	audioPath := filepath.Join(c.tempDir, fmt.Sprintf("meeting_recording_%d.wav", timestamp))
	if err := os.WriteFile(audioPath, c.audio.Bytes(), 0644); err != nil {
		return RecordingResult{}, fmt.Errorf("write recording: %w", err)
	}

	transcriptPath := filepath.Join(c.tempDir, fmt.Sprintf("meeting_transcript_%d.json", timestamp))
	data, err := json.MarshalIndent(map[string][]TranscriptSegment{"transcript": c.segments}, "", "  ")
	if err != nil {
		return RecordingResult{}, fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(transcriptPath, data, 0644); err != nil {
		return RecordingResult{}, fmt.Errorf("write transcript: %w", err)
	}

	return RecordingResult{AudioPath: audioPath, TranscriptPath: transcriptPath}, nil
}

// Leave stops any active recording and disconnects.
func (c *Connector) Leave(ctx context.Context) error {
	c.mu.Lock()
	recording := c.recording
	c.mu.Unlock()

	if recording {
		if _, err := c.StopRecording(); err != nil {
			c.logger.Warn(ctx, "Stop recording during leave: %v", err)
		}
	}

	c.mu.Lock()
	current := c.current
	c.current = nil
	c.mu.Unlock()

	if current == nil {
		return fmt.Errorf("not connected to any meeting")
	}

	if err := c.api.Leave(ctx, *current); err != nil {
		c.logger.Warn(ctx, "Leave meeting: %v", err)
	}
	return nil
}

// Status reports the current connection and recording state.
func (c *Connector) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return Status{}
	}

	return Status{
		Connected:        true,
		MeetingID:        c.current.MeetingID,
		Topic:            c.current.Topic,
		Recording:        c.recording,
		TranscriptChunks: len(c.segments),
		AudioBytes:       c.audio.Len(),
	}
}
