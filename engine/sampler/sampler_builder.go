package sampler

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-mcanim/common"
)

// SamplerBuilderOption is a functional option for configuring a Sampler.
type SamplerBuilderOption func(*sampler)

// WithSpace sets the coordinate space transforms are read in.
//
// Parameters:
//   - space: common.SpaceLocal or common.SpaceWorld
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithSpace(space common.Space) SamplerBuilderOption {
	return func(s *sampler) {
		s.space = common.Coalesce(space, common.SpaceLocal)
	}
}

// WithUpAxis sets the up axis of the source scene. A Z-up source is converted to Y-up.
//
// Parameters:
//   - axis: common.UpAxisY or common.UpAxisZ
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithUpAxis(axis common.UpAxis) SamplerBuilderOption {
	return func(s *sampler) {
		s.upAxis = common.Coalesce(axis, common.UpAxisY)
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SamplerBuilderOption {
	return func(s *sampler) {
		s.logger = logger
	}
}
