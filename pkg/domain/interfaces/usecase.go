package interfaces

import (
	"context"

	"github.com/ltth-app/siteops/pkg/domain/model"
)

// ReleaseUseCase runs the release state machine
type ReleaseUseCase interface {
	// Run selects, validates and releases the highest candidate. A run with
	// no candidates returns a result with status nothing_to_do.
	Run(ctx context.Context) (*model.ReleaseResult, error)
}

// FaviconUseCase renders the favicon set
type FaviconUseCase interface {
	Generate(ctx context.Context) (*model.FaviconResult, error)
}

// SpriteUseCase composites a sprite sheet
type SpriteUseCase interface {
	Build(ctx context.Context, manifest model.SpriteManifest) (*model.SpriteResult, error)
}

// Reporter prints the operator-facing progress trace.
type Reporter interface {
	Banner(title string)
	Step(n int, title string)
	OK(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Fail(format string, args ...any)
	Done(format string, args ...any)
}
