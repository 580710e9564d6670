package podcast

import (
	"github.com/dharshini66/podcast-generator/internal/audio"
	"github.com/dharshini66/podcast-generator/internal/config"
	"github.com/dharshini66/podcast-generator/internal/keypoints"
	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/transcription"
	"github.com/dharshini66/podcast-generator/internal/voice"
)

type implGenerator struct {
	cfg         *config.Config
	transcriber transcription.Transcriber
	extractor   keypoints.Extractor
	synthesizer voice.Synthesizer
	processor   audio.Processor
	store       Store
	sem         *semaphore
	logger      logger.Logger
}

// NewGenerator wires the pipeline stages together.
func NewGenerator(
	cfg *config.Config,
	transcriber transcription.Transcriber,
	extractor keypoints.Extractor,
	synthesizer voice.Synthesizer,
	processor audio.Processor,
	store Store,
	log logger.Logger,
) Generator {
	return &implGenerator{
		cfg:         cfg,
		transcriber: transcriber,
		extractor:   extractor,
		synthesizer: synthesizer,
		processor:   processor,
		store:       store,
		sem:         newSemaphore(cfg.Performance.MaxConcurrent),
		logger:      log.Named("podcast"),
	}
}
