package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dharshini66/podcast-generator/internal/config"
	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/meeting"
	"github.com/dharshini66/podcast-generator/internal/podcast"
)

type fakeGenerator struct {
	calls []string
	err   error
}

func (g *fakeGenerator) GenerateFromFile(ctx context.Context, audioPath, title string) (podcast.Podcast, error) {
	g.calls = append(g.calls, audioPath)
	if g.err != nil {
		return podcast.Podcast{}, g.err
	}
	return podcast.Podcast{ID: "p-1", Title: title, AudioFile: "podcast_1.mp3"}, nil
}

type fakeStore struct {
	podcasts []podcast.Podcast
}

func (s *fakeStore) Insert(ctx context.Context, p podcast.Podcast) error { return nil }

func (s *fakeStore) List(ctx context.Context) ([]podcast.Podcast, error) {
	return s.podcasts, nil
}

func (s *fakeStore) Get(ctx context.Context, id string) (podcast.Podcast, error) {
	for _, p := range s.podcasts {
		if p.ID == id {
			return p, nil
		}
	}
	return podcast.Podcast{}, fmt.Errorf("podcast %s: not found", id)
}

// fakeMeetingAPI serves an audio stream that stays open until the
// recording is cancelled, like a live meeting would.
type fakeMeetingAPI struct {
	streamWriter *io.PipeWriter
}

func (a *fakeMeetingAPI) Join(ctx context.Context, meetingID, meetingURL string) (meeting.Meeting, error) {
	if meetingID == "" && meetingURL == "" {
		return meeting.Meeting{}, fmt.Errorf("meeting id or url required")
	}
	return meeting.Meeting{MeetingID: "mtg-1", SessionID: "sess-1", Topic: "Weekly Sync"}, nil
}

func (a *fakeMeetingAPI) Leave(ctx context.Context, m meeting.Meeting) error { return nil }

func (a *fakeMeetingAPI) Transcript(ctx context.Context, m meeting.Meeting) ([]meeting.TranscriptSegment, error) {
	return nil, nil
}

func (a *fakeMeetingAPI) OpenStream(ctx context.Context, m meeting.Meeting) (io.ReadCloser, error) {
	r, w := io.Pipe()
	a.streamWriter = w
	go w.Write(make([]byte, 1024))
	return r, nil
}

func newTestServer(t *testing.T, gen *fakeGenerator, store *fakeStore) (*implServer, *config.Config) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Paths.Uploads = t.TempDir()
	cfg.Paths.Output = t.TempDir()
	cfg.Paths.Temp = t.TempDir()

	log := logger.New("error")
	connector := meeting.NewConnector(&fakeMeetingAPI{}, cfg.Paths.Temp, 10*time.Millisecond, log)

	srv := New(cfg, gen, store, connector, log)
	return srv.(*implServer), cfg
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, &fakeGenerator{}, &fakeStore{})

	resp, err := s.app.Test(httpReq(t, "GET", "/healthz", nil, ""))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestUpload(t *testing.T) {
	gen := &fakeGenerator{}
	s, cfg := newTestServer(t, gen, &fakeStore{})

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("audio", "standup.mp3")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	fw.Write([]byte("fake audio bytes"))
	w.WriteField("title", "Daily Standup")
	w.Close()

	req := httpReq(t, "POST", "/api/upload", body, w.FormDataContentType())
	resp, err := s.app.Test(req, 5000)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var p podcast.Podcast
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if p.Title != "Daily Standup" {
		t.Errorf("title = %q, want %q", p.Title, "Daily Standup")
	}

	if len(gen.calls) != 1 {
		t.Fatalf("generator calls = %d, want 1", len(gen.calls))
	}
	if filepath.Dir(gen.calls[0]) != cfg.Paths.Uploads {
		t.Errorf("upload saved to %s, want dir %s", gen.calls[0], cfg.Paths.Uploads)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	s, _ := newTestServer(t, &fakeGenerator{}, &fakeStore{})

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	w.WriteField("title", "No Audio")
	w.Close()

	resp, err := s.app.Test(httpReq(t, "POST", "/api/upload", body, w.FormDataContentType()))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	s, _ := newTestServer(t, &fakeGenerator{}, &fakeStore{})

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, _ := w.CreateFormFile("audio", "notes.txt")
	fw.Write([]byte("not audio"))
	w.Close()

	resp, err := s.app.Test(httpReq(t, "POST", "/api/upload", body, w.FormDataContentType()))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestListPodcasts(t *testing.T) {
	store := &fakeStore{podcasts: []podcast.Podcast{
		{ID: "p-1", Title: "First"},
		{ID: "p-2", Title: "Second"},
	}}
	s, _ := newTestServer(t, &fakeGenerator{}, store)

	resp, err := s.app.Test(httpReq(t, "GET", "/api/podcasts", nil, ""))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Podcasts []podcast.Podcast `json:"podcasts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Podcasts) != 2 {
		t.Errorf("podcasts = %d, want 2", len(out.Podcasts))
	}
}

func TestGetPodcast(t *testing.T) {
	store := &fakeStore{podcasts: []podcast.Podcast{{ID: "p-1", Title: "First"}}}
	s, _ := newTestServer(t, &fakeGenerator{}, store)

	resp, err := s.app.Test(httpReq(t, "GET", "/api/podcasts/p-1", nil, ""))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	resp, err = s.app.Test(httpReq(t, "GET", "/api/podcasts/missing", nil, ""))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServeAudio(t *testing.T) {
	s, cfg := newTestServer(t, &fakeGenerator{}, &fakeStore{})

	path := filepath.Join(cfg.Paths.Output, "podcast_1.mp3")
	if err := os.WriteFile(path, []byte("mp3 bytes"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	resp, err := s.app.Test(httpReq(t, "GET", "/podcasts/podcast_1.mp3", nil, ""))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	data, _ := io.ReadAll(resp.Body)
	if string(data) != "mp3 bytes" {
		t.Errorf("body = %q, want %q", data, "mp3 bytes")
	}

	resp, err = s.app.Test(httpReq(t, "GET", "/podcasts/missing.mp3", nil, ""))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestMeetingLifecycle(t *testing.T) {
	gen := &fakeGenerator{}
	s, _ := newTestServer(t, gen, &fakeStore{})

	resp, err := s.app.Test(httpReq(t, "POST", "/api/meetings/join", strings.NewReader(`{"meeting_id":"mtg-1"}`), "application/json"))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join status = %d, want 200", resp.StatusCode)
	}

	resp, err = s.app.Test(httpReq(t, "POST", "/api/meetings/record", nil, ""))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("record status = %d, want 200", resp.StatusCode)
	}

	resp, err = s.app.Test(httpReq(t, "GET", "/api/meetings/status", nil, ""))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	var status meeting.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Connected || !status.Recording {
		t.Errorf("status = %+v, want connected and recording", status)
	}

	resp, err = s.app.Test(httpReq(t, "POST", "/api/meetings/stop", nil, ""), 5000)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("stop status = %d, want 201", resp.StatusCode)
	}
	if len(gen.calls) != 1 {
		t.Errorf("generator calls = %d, want 1", len(gen.calls))
	}
}

func TestMeetingJoinValidation(t *testing.T) {
	s, _ := newTestServer(t, &fakeGenerator{}, &fakeStore{})

	resp, err := s.app.Test(httpReq(t, "POST", "/api/meetings/join", strings.NewReader(`{}`), "application/json"))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMeetingRecordWithoutJoin(t *testing.T) {
	s, _ := newTestServer(t, &fakeGenerator{}, &fakeStore{})

	resp, err := s.app.Test(httpReq(t, "POST", "/api/meetings/record", nil, ""))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func httpReq(t *testing.T, method, target string, body io.Reader, contentType string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}
