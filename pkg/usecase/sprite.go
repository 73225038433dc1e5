package usecase

import (
	"context"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/image/draw"

	"github.com/ltth-app/siteops/pkg/domain/interfaces"
	"github.com/ltth-app/siteops/pkg/domain/model"
	"github.com/ltth-app/siteops/pkg/domain/types"
	"github.com/ltth-app/siteops/pkg/utils/logging"
	"github.com/ltth-app/siteops/pkg/utils/progress"
)

type spriteUseCase struct {
	fs       billy.Filesystem
	reporter interfaces.Reporter
}

// SpriteOption customizes the sprite use case
type SpriteOption func(*spriteUseCase)

// WithSpriteReporter sets the progress trace destination
func WithSpriteReporter(r interfaces.Reporter) SpriteOption {
	return func(uc *spriteUseCase) {
		if r != nil {
			uc.reporter = r
		}
	}
}

// NewSprite creates a SpriteUseCase. Manifest paths are resolved on fs.
func NewSprite(fs billy.Filesystem, opts ...SpriteOption) interfaces.SpriteUseCase {
	uc := &spriteUseCase{
		fs:       fs,
		reporter: progress.Nop{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *spriteUseCase) Build(ctx context.Context, m model.SpriteManifest) (*model.SpriteResult, error) {
	logger := logging.From(ctx)
	r := uc.reporter

	if err := m.Validate(); err != nil {
		return nil, err
	}

	width, height := m.SheetSize()
	r.Banner(fmt.Sprintf("Sprite sheet %dx%d", width, height))

	result := &model.SpriteResult{Path: m.Output}
	sheet := image.NewRGBA(image.Rect(0, 0, width, height))

	for i, pose := range m.Poses {
		r.Info("Processing sprite %d/%d: %s", i+1, len(m.Poses), pose)

		src, _, err := readImage(uc.fs, pose.Source)
		if err != nil {
			w := fmt.Sprintf("%s could not be loaded, using a blank frame", pose.Source)
			logger.Warn("Sprite source unavailable", "pose", pose.Name, "source", pose.Source, "error", err)
			r.Warn("%s", w)
			result.Missing = append(result.Missing, pose.Source)
			result.Warnings = append(result.Warnings, w)
			continue
		}

		frame := image.Rect(i*m.FrameWidth, 0, (i+1)*m.FrameWidth, m.FrameHeight)
		draw.CatmullRom.Scale(sheet, frame, src, src.Bounds(), draw.Over, nil)
	}

	if err := writePNG(uc.fs, m.Output, sheet); err != nil {
		return nil, err
	}

	cfg, err := readImageConfig(uc.fs, m.Output)
	if err != nil {
		return nil, err
	}
	if cfg.Width != width || cfg.Height != height {
		return nil, goerr.New("sprite sheet has unexpected size",
			goerr.V("path", m.Output),
			goerr.V("width", cfg.Width), goerr.V("height", cfg.Height),
			goerr.V("expected_width", width), goerr.V("expected_height", height),
			goerr.T(types.ErrTagValidation))
	}
	result.Width, result.Height = cfg.Width, cfg.Height

	if info, err := uc.fs.Stat(m.Output); err == nil {
		result.Bytes = info.Size()
	}
	r.OK("Sprite sheet saved: %s (%s)", m.Output, progress.Size(result.Bytes))

	result.CSS = GenerateCSS(m)
	if m.CSSOutput != "" {
		if err := uc.fs.MkdirAll(path.Dir(m.CSSOutput), 0o755); err != nil {
			return nil, goerr.Wrap(err, "failed to create css directory", goerr.V("path", m.CSSOutput), goerr.T(types.ErrTagIO))
		}
		if err := util.WriteFile(uc.fs, m.CSSOutput, []byte(result.CSS), 0o644); err != nil {
			return nil, goerr.Wrap(err, "failed to write css", goerr.V("path", m.CSSOutput), goerr.T(types.ErrTagIO))
		}
		r.OK("CSS written: %s", m.CSSOutput)
	}

	logger.Info("Sprite sheet built",
		"path", m.Output,
		"width", width,
		"height", height,
		"missing", len(result.Missing),
	)
	r.Done("Sprite sheet generation complete")
	return result, nil
}

// GenerateCSS renders the base class and one background-position rule per
// pose, in manifest order.
func GenerateCSS(m model.SpriteManifest) string {
	width, height := m.SheetSize()

	var b strings.Builder
	fmt.Fprintf(&b, ".%s-sprite {\n", m.ClassName)
	fmt.Fprintf(&b, "    width: %dpx;\n", m.FrameWidth)
	fmt.Fprintf(&b, "    height: %dpx;\n", m.FrameHeight)
	fmt.Fprintf(&b, "    background-image: url('%s');\n", m.ImageURL)
	b.WriteString("    background-repeat: no-repeat;\n")
	fmt.Fprintf(&b, "    background-size: %dpx %dpx;\n", width, height)
	b.WriteString("    display: inline-block;\n")
	b.WriteString("}\n\n")

	for i, pose := range m.Poses {
		fmt.Fprintf(&b, ".%s-%s { background-position: %dpx 0; }\n", m.ClassName, pose.Name, -i*m.FrameWidth)
	}
	return b.String()
}
