package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

type implClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a meeting-platform API client.
func NewClient(baseURL, apiKey string, log logger.Logger) API {
	return &implClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     log.Named("meeting"),
	}
}

func (c *implClient) Join(ctx context.Context, meetingID, meetingURL string) (Meeting, error) {
	if meetingID == "" && meetingURL == "" {
		return Meeting{}, fmt.Errorf("meeting id or url is required")
	}
	if c.apiKey == "" {
		return Meeting{}, fmt.Errorf("meeting API key not configured")
	}

	payload := map[string]string{}
	if meetingID != "" {
		payload["meeting_id"] = meetingID
	} else {
		payload["meeting_url"] = meetingURL
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Meeting{}, fmt.Errorf("marshal join request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/meetings/join", bytes.NewReader(body))
	if err != nil {
		return Meeting{}, fmt.Errorf("build join request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Meeting{}, fmt.Errorf("join meeting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Meeting{}, fmt.Errorf("join meeting: unexpected status %s", resp.Status)
	}

	var m Meeting
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return Meeting{}, fmt.Errorf("decode join response: %w", err)
	}

	c.logger.Info(ctx, "Joined meeting %s (session %s)", m.MeetingID, m.SessionID)
	return m, nil
}

func (c *implClient) Leave(ctx context.Context, m Meeting) error {
	url := fmt.Sprintf("%s/meetings/%s/leave?session_id=%s", c.baseURL, m.MeetingID, m.SessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("build leave request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("leave meeting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("leave meeting: unexpected status %s", resp.Status)
	}

	c.logger.Info(ctx, "Left meeting %s", m.MeetingID)
	return nil
}

func (c *implClient) Transcript(ctx context.Context, m Meeting) ([]TranscriptSegment, error) {
	url := fmt.Sprintf("%s/meetings/%s/transcript?session_id=%s", c.baseURL, m.MeetingID, m.SessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build transcript request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch transcript: unexpected status %s", resp.Status)
	}

	var out struct {
		Segments []TranscriptSegment `json:"segments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode transcript response: %w", err)
	}

	return out.Segments, nil
}

// OpenStream starts the chunked audio stream for the session. The
// caller owns the returned body.
func (c *implClient) OpenStream(ctx context.Context, m Meeting) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/meetings/%s/stream?session_id=%s&format=audio", c.baseURL, m.MeetingID, m.SessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build stream request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open audio stream: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("open audio stream: unexpected status %s", resp.Status)
	}

	return resp.Body, nil
}

func (c *implClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
