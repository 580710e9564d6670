package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

type implTranscriber struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	timeout      time.Duration
	httpClient   *http.Client
	logger       logger.Logger
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptJob struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// Transcribe uploads the audio file, submits a transcription job, and
// polls until it completes or the configured timeout elapses.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	t.logger.Info(ctx, "Starting transcription: %s", audioPath)

	uploadURL, err := t.upload(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}

	jobID, err := t.submit(ctx, uploadURL)
	if err != nil {
		return "", fmt.Errorf("submit transcript job: %w", err)
	}

	text, err := t.poll(ctx, jobID)
	if err != nil {
		return "", fmt.Errorf("poll transcript job %s: %w", jobID, err)
	}

	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

func (t *implTranscriber) upload(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v2/upload", f)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", t.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	var ur uploadResponse
	if err := t.do(req, &ur); err != nil {
		return "", err
	}
	if ur.UploadURL == "" {
		return "", fmt.Errorf("empty upload_url in response")
	}

	t.logger.Debug(ctx, "Uploaded audio: %s", ur.UploadURL)
	return ur.UploadURL, nil
}

func (t *implTranscriber) submit(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"audio_url": audioURL})
	if err != nil {
		return "", fmt.Errorf("marshal job request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v2/transcript", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build job request: %w", err)
	}
	req.Header.Set("Authorization", t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var job transcriptJob
	if err := t.do(req, &job); err != nil {
		return "", err
	}
	if job.ID == "" {
		return "", fmt.Errorf("empty job id in response")
	}

	return job.ID, nil
}

func (t *implTranscriber) poll(ctx context.Context, jobID string) (string, error) {
	deadline := time.Now().Add(t.timeout)
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/v2/transcript/"+jobID, nil)
		if err != nil {
			return "", fmt.Errorf("build poll request: %w", err)
		}
		req.Header.Set("Authorization", t.apiKey)

		var job transcriptJob
		if err := t.do(req, &job); err != nil {
			return "", err
		}

		switch job.Status {
		case "completed":
			return job.Text, nil
		case "error":
			return "", fmt.Errorf("transcription failed: %s", job.Error)
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("transcription timed out after %s", t.timeout)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

func (t *implTranscriber) do(req *http.Request, out interface{}) error {
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
