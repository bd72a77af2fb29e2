// Package verify implements the post-export check of the written file.
package verify

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/audioexport/pkg/pipeline"
	"github.com/user/audioexport/pkg/ports"
)

// ErrOutputMissing is returned when the encoder left no file behind.
var ErrOutputMissing = errors.New("output missing")

// Stage checks that an exported file exists and, for containers the prober
// understands, reads its track layout.
type Stage struct {
	fs     ports.FileSystem
	prober ports.MediaProber
	logger ports.Logger
}

// NewStage creates a new verify stage. prober may be nil.
func NewStage(fs ports.FileSystem, prober ports.MediaProber, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		prober: prober,
		logger: logger.WithComponent("verify"),
	}
}

// Execute verifies input.Path.
func (s *Stage) Execute(ctx context.Context, input pipeline.VerifyInput) (pipeline.VerifyResult, error) {
	var result pipeline.VerifyResult

	if err := ctx.Err(); err != nil {
		return result, err
	}

	exists, err := s.fs.Exists(input.Path)
	if err != nil {
		return result, fmt.Errorf("check output: %w", err)
	}
	if !exists {
		return result, fmt.Errorf("%w: %s", ErrOutputMissing, input.Path)
	}

	size, err := s.fs.Size(input.Path)
	if err != nil {
		return result, fmt.Errorf("read output size: %w", err)
	}
	if size == 0 {
		return result, fmt.Errorf("output %s is empty", input.Path)
	}
	result.Size = size
	s.logger.Debug("Output is %d bytes", size)

	if s.prober == nil || !s.prober.Supports(input.Path) {
		return result, nil
	}

	info, err := s.prober.Probe(input.Path)
	if err != nil {
		return result, fmt.Errorf("failed to probe %s: %w", input.Path, err)
	}
	result.Probed = true
	result.Media = &info

	audio, video := info.AudioCodec, info.VideoCodec
	if audio == "" {
		audio = "no"
	}
	if video == "" {
		video = "no"
	}
	s.logger.Debug("Output has %s audio and %s video", audio, video)

	return result, nil
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.VerifyInput, pipeline.VerifyResult] = (*Stage)(nil)
