package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/dharshini66/podcast-generator/internal/audio"
	"github.com/dharshini66/podcast-generator/internal/config"
	"github.com/dharshini66/podcast-generator/internal/keypoints"
	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/meeting"
	"github.com/dharshini66/podcast-generator/internal/podcast"
	"github.com/dharshini66/podcast-generator/internal/server"
	"github.com/dharshini66/podcast-generator/internal/transcription"
	"github.com/dharshini66/podcast-generator/internal/voice"
	"github.com/dharshini66/podcast-generator/internal/watcher"
	"github.com/dharshini66/podcast-generator/pkg/executor"
)

func main() {
	ctx := context.Background()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	secrets := config.LoadSecrets()

	// Initialize logger
	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting-to-Podcast Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Max Concurrent Pipelines: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	if secrets.AssemblyAIKey == "" {
		log.Warn(ctx, "ASSEMBLYAI_API_KEY not set, transcription runs in placeholder mode")
	}
	if secrets.ElevenLabsKey == "" {
		log.Warn(ctx, "ELEVENLABS_API_KEY not set, narration runs in placeholder mode")
	}

	// Open the podcast store
	store, db, err := podcast.OpenStore(cfg.Paths.Database)
	if err != nil {
		log.Error(ctx, "Failed to open store: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize pipeline stages
	exec := executor.New()
	if !exec.Available("ffmpeg") {
		log.Warn(ctx, "ffmpeg not found in PATH, audio processing will fail")
	}

	proc := audio.New(cfg.Paths.Temp, exec, log)
	transcriber := transcription.New(cfg.Transcription, secrets.AssemblyAIKey, log)
	extractor := keypoints.New(cfg.KeyPoints, secrets.GeminiKeys, log)
	synthesizer := voice.New(cfg.Voice, secrets.ElevenLabsKey, secrets.ElevenLabsBase, proc, log)
	generator := podcast.NewGenerator(cfg, transcriber, extractor, synthesizer, proc, store, log)

	// Meeting connector
	meetingAPI := meeting.NewClient(cfg.Meeting.BaseURL, secrets.MeetingAPIKey, log)
	if cfg.Meeting.Transport == "websocket" {
		meetingAPI = meeting.NewWSClient(meetingAPI, cfg.Meeting.WSBaseURL, secrets.MeetingAPIKey, log)
	}
	connector := meeting.NewConnector(meetingAPI, cfg.Paths.Temp, time.Duration(cfg.Meeting.PollIntervalSec)*time.Second, log)

	// Watch the upload directory for dropped recordings
	handler := func(ctx context.Context, filePath string) error {
		_, err := generator.GenerateFromFile(ctx, filePath, "")
		return err
	}
	w, err := watcher.New(cfg.Paths.Uploads, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	srv := server.New(cfg, generator, store, connector, log)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()
	go func() {
		if err := srv.Listen(cfg.Server.Addr); err != nil {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Podcast Pipeline is ready!")
	log.Info(ctx, "HTTP API: %s", cfg.Server.Addr)
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Uploads)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "HTTP shutdown error: %v", err)
	}
	if err := connector.Leave(context.Background()); err != nil {
		log.Debug(ctx, "Meeting leave on shutdown: %v", err)
	}

	log.Info(ctx, "Podcast Pipeline stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Uploads,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
