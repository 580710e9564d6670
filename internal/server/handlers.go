package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (s *implServer) Listen(addr string) error {
	s.logger.Info(context.Background(), "HTTP server listening on %s", addr)
	return s.app.Listen(addr)
}

func (s *implServer) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *implServer) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleUpload accepts a recording and runs the full pipeline on it.
func (s *implServer) handleUpload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	file, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "`audio` file is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isAudioExt(ext) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("unsupported audio format: %s", ext)})
	}

	dst := filepath.Join(s.cfg.Paths.Uploads, uuid.NewString()+ext)
	if err := c.SaveFile(file, dst); err != nil {
		s.logger.Error(ctx, "Failed to save upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save upload"})
	}

	title := c.FormValue("title")
	if title == "" {
		title = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	}

	p, err := s.generator.GenerateFromFile(ctx, dst, title)
	if err != nil {
		s.logger.Error(ctx, "Pipeline failed for %s: %v", dst, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

func (s *implServer) handleListPodcasts(c *fiber.Ctx) error {
	podcasts, err := s.store.List(c.UserContext())
	if err != nil {
		s.logger.Error(c.UserContext(), "Failed to list podcasts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list podcasts"})
	}
	return c.JSON(fiber.Map{"podcasts": podcasts})
}

func (s *implServer) handleGetPodcast(c *fiber.Ctx) error {
	p, err := s.store.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "podcast not found"})
	}
	return c.JSON(p)
}

// handleServeAudio streams a generated file from the output directory.
func (s *implServer) handleServeAudio(c *fiber.Ctx) error {
	name := c.Params("filename")
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid filename"})
	}

	path := filepath.Join(s.cfg.Paths.Output, name)
	if _, err := os.Stat(path); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
	}

	if c.QueryBool("download") {
		return c.Download(path, name)
	}
	return c.SendFile(path)
}

type joinRequest struct {
	MeetingID  string `json:"meeting_id"`
	MeetingURL string `json:"meeting_url"`
}

func (s *implServer) handleMeetingJoin(c *fiber.Ctx) error {
	var req joinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.MeetingID == "" && req.MeetingURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "`meeting_id` or `meeting_url` is required"})
	}

	m, err := s.connector.Join(c.UserContext(), req.MeetingID, req.MeetingURL)
	if err != nil {
		s.logger.Error(c.UserContext(), "Failed to join meeting: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"meeting_id": m.MeetingID, "topic": m.Topic})
}

func (s *implServer) handleMeetingRecord(c *fiber.Ctx) error {
	if err := s.connector.StartRecording(c.UserContext()); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"recording": true})
}

// handleMeetingStop finalizes the recording and feeds it into the pipeline.
func (s *implServer) handleMeetingStop(c *fiber.Ctx) error {
	ctx := c.UserContext()

	result, err := s.connector.StopRecording()
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	status := s.connector.Status()
	title := status.Topic
	if title == "" {
		title = "Meeting Recording"
	}

	p, err := s.generator.GenerateFromFile(ctx, result.AudioPath, title)
	if err != nil {
		s.logger.Error(ctx, "Pipeline failed for meeting recording %s: %v", result.AudioPath, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"podcast":         p,
		"transcript_file": result.TranscriptPath,
	})
}

func (s *implServer) handleMeetingStatus(c *fiber.Ctx) error {
	return c.JSON(s.connector.Status())
}

func isAudioExt(ext string) bool {
	switch ext {
	case ".mp3", ".wav", ".m4a", ".ogg", ".flac":
		return true
	}
	return false
}
