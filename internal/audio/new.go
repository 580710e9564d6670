package audio

import (
	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/pkg/executor"
)

type implProcessor struct {
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Processor that writes intermediate files into tempDir.
func New(tempDir string, exec executor.Executor, log logger.Logger) Processor {
	return &implProcessor{
		tempDir:  tempDir,
		executor: exec,
		logger:   log.Named("audio"),
	}
}
