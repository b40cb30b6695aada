package assembler

import (
	"github.com/dharshini66/podcast-generator/internal/logger"
)

type implAssembler struct {
	logger logger.Logger
}

// New creates an Assembler
func New(log logger.Logger) Assembler {
	return &implAssembler{logger: log}
}
