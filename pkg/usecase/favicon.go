package usecase

import (
	"context"
	"image"
	"path"

	"github.com/fogleman/gg"
	"github.com/go-git/go-billy/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/ltth-app/siteops/pkg/domain/interfaces"
	"github.com/ltth-app/siteops/pkg/domain/model"
	"github.com/ltth-app/siteops/pkg/domain/types"
	"github.com/ltth-app/siteops/pkg/utils/logging"
	"github.com/ltth-app/siteops/pkg/utils/progress"
)

const (
	brandColor  = "#12a116"
	markColor   = "#ffffff"
	ogBackColor = "#0e0f10"

	ogWidth     = 1200
	ogHeight    = 630
	ogImageName = "og-image.png"
)

type faviconUseCase struct {
	fs       billy.Filesystem
	outDir   string
	icons    []model.IconSpec
	reporter interfaces.Reporter
}

// FaviconOption customizes the favicon use case
type FaviconOption func(*faviconUseCase)

// WithIcons replaces the default icon set
func WithIcons(icons []model.IconSpec) FaviconOption {
	return func(uc *faviconUseCase) {
		uc.icons = icons
	}
}

// WithFaviconReporter sets the progress trace destination
func WithFaviconReporter(r interfaces.Reporter) FaviconOption {
	return func(uc *faviconUseCase) {
		if r != nil {
			uc.reporter = r
		}
	}
}

// NewFavicon creates a FaviconUseCase writing into outDir on fs.
func NewFavicon(fs billy.Filesystem, outDir string, opts ...FaviconOption) interfaces.FaviconUseCase {
	uc := &faviconUseCase{
		fs:       fs,
		outDir:   outDir,
		icons:    model.DefaultIcons(),
		reporter: progress.Nop{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *faviconUseCase) Generate(ctx context.Context) (*model.FaviconResult, error) {
	logger := logging.From(ctx)
	result := &model.FaviconResult{}

	uc.reporter.Banner("Generating favicons")
	if err := uc.fs.MkdirAll(uc.outDir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", uc.outDir), goerr.T(types.ErrTagIO))
	}

	for _, icon := range uc.icons {
		if icon.Size <= 0 {
			return nil, goerr.New("icon size must be positive", goerr.V("name", icon.Name), goerr.T(types.ErrTagConfig))
		}
		p := path.Join(uc.outDir, icon.Name)
		if err := writePNG(uc.fs, p, RenderIcon(icon.Size)); err != nil {
			return nil, err
		}
		logger.Debug("Wrote icon", "path", p, "size", icon.Size)
		uc.reporter.OK("%s (%dx%d)", p, icon.Size, icon.Size)
		result.Files = append(result.Files, p)
	}

	p := path.Join(uc.outDir, ogImageName)
	if err := writePNG(uc.fs, p, RenderOGImage()); err != nil {
		return nil, err
	}
	uc.reporter.OK("%s (%dx%d)", p, ogWidth, ogHeight)
	result.Files = append(result.Files, p)

	logger.Info("Favicons generated", "dir", uc.outDir, "count", len(result.Files))
	uc.reporter.Done("Generated %d images in %s/", len(result.Files), uc.outDir)
	return result, nil
}

// RenderIcon draws the square brand mark: a white diamond reaching a third
// of the size from the center on the brand green.
func RenderIcon(size int) image.Image {
	dc := gg.NewContext(size, size)
	dc.SetHexColor(brandColor)
	dc.Clear()

	c := float64(size) / 2
	d := float64(size) / 3
	dc.MoveTo(c, c-d)
	dc.LineTo(c+d, c)
	dc.LineTo(c, c+d)
	dc.LineTo(c-d, c)
	dc.ClosePath()
	dc.SetHexColor(markColor)
	dc.Fill()

	return dc.Image()
}

// RenderOGImage draws the 1200x630 social preview image.
func RenderOGImage() image.Image {
	dc := gg.NewContext(ogWidth, ogHeight)
	dc.SetHexColor(ogBackColor)
	dc.Clear()

	// circle inscribed in (700,115)-(1100,515)
	dc.DrawEllipse(900, 315, 200, 200)
	dc.SetHexColor(brandColor)
	dc.Fill()

	return dc.Image()
}
