package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dharshini66/podcast-generator/internal/config"
	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/meeting"
	"github.com/dharshini66/podcast-generator/internal/podcast"
)

type implServer struct {
	app       *fiber.App
	cfg       *config.Config
	generator podcast.Generator
	store     podcast.Store
	connector *meeting.Connector
	logger    logger.Logger
}

// New builds the HTTP server and registers all routes.
func New(
	cfg *config.Config,
	generator podcast.Generator,
	store podcast.Store,
	connector *meeting.Connector,
	log logger.Logger,
) Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             100 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	s := &implServer{
		app:       app,
		cfg:       cfg,
		generator: generator,
		store:     store,
		connector: connector,
		logger:    log.Named("server"),
	}
	s.routes()

	return s
}

func (s *implServer) routes() {
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api")
	api.Post("/upload", s.handleUpload)
	api.Get("/podcasts", s.handleListPodcasts)
	api.Get("/podcasts/:id", s.handleGetPodcast)

	meetings := api.Group("/meetings")
	meetings.Post("/join", s.handleMeetingJoin)
	meetings.Post("/record", s.handleMeetingRecord)
	meetings.Post("/stop", s.handleMeetingStop)
	meetings.Get("/status", s.handleMeetingStatus)

	s.app.Get("/podcasts/:filename", s.handleServeAudio)
}
