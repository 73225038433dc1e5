package model

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ltth-app/siteops/pkg/domain/types"
)

// IconSpec is a square favicon rendered at Size pixels.
type IconSpec struct {
	Name string
	Size int
}

// DefaultIcons is the favicon set referenced by the site's HTML head.
func DefaultIcons() []IconSpec {
	return []IconSpec{
		{Name: "favicon-16x16.png", Size: 16},
		{Name: "favicon-32x32.png", Size: 32},
		{Name: "apple-touch-icon.png", Size: 180},
		{Name: "icon-192x192.png", Size: 192},
		{Name: "icon-512x512.png", Size: 512},
	}
}

// Pose is one frame of a sprite sheet.
type Pose struct {
	Name   string `toml:"name" yaml:"name"`
	Source string `toml:"source" yaml:"source"`
}

// SpriteManifest describes a horizontal sprite sheet.
type SpriteManifest struct {
	FrameWidth  int    `toml:"frame_width" yaml:"frame_width"`
	FrameHeight int    `toml:"frame_height" yaml:"frame_height"`
	Output      string `toml:"output" yaml:"output"`
	ImageURL    string `toml:"image_url" yaml:"image_url"`
	ClassName   string `toml:"class_name" yaml:"class_name"`
	CSSOutput   string `toml:"css_output" yaml:"css_output"` // optional
	Poses       []Pose `toml:"poses" yaml:"poses"`
}

// DefaultSpriteManifest is the mascot sheet used on the landing page.
func DefaultSpriteManifest() SpriteManifest {
	return SpriteManifest{
		FrameWidth:  200,
		FrameHeight: 200,
		Output:      "assets/mascot-sprite.png",
		ImageURL:    "/assets/mascot-sprite.png",
		ClassName:   "mascot",
		Poses: []Pose{
			{Name: "default", Source: "assets/ltthicon.png"},
			{Name: "waving", Source: "assets/winken.png"},
			{Name: "winking", Source: "assets/zwinkern.png"},
			{Name: "happy", Source: "assets/ltthicon.png"},
			{Name: "excited", Source: "assets/winken.png"},
			{Name: "thinking", Source: "assets/ltthicon.png"},
		},
	}
}

// SheetSize returns the expected sheet dimensions.
func (m SpriteManifest) SheetSize() (int, int) {
	return m.FrameWidth * len(m.Poses), m.FrameHeight
}

// Validate checks the manifest can produce a sheet.
func (m SpriteManifest) Validate() error {
	if m.FrameWidth <= 0 || m.FrameHeight <= 0 {
		return goerr.New("frame size must be positive",
			goerr.V("width", m.FrameWidth), goerr.V("height", m.FrameHeight), goerr.T(types.ErrTagConfig))
	}
	if m.Output == "" {
		return goerr.New("sprite output path is required", goerr.T(types.ErrTagConfig))
	}
	if m.ClassName == "" {
		return goerr.New("sprite class name is required", goerr.T(types.ErrTagConfig))
	}
	if len(m.Poses) == 0 {
		return goerr.New("sprite manifest has no poses", goerr.T(types.ErrTagConfig))
	}
	seen := make(map[string]struct{}, len(m.Poses))
	for i, p := range m.Poses {
		if p.Name == "" {
			return goerr.New("pose name is required", goerr.V("index", i), goerr.T(types.ErrTagConfig))
		}
		if _, dup := seen[p.Name]; dup {
			return goerr.New("duplicate pose name", goerr.V("name", p.Name), goerr.T(types.ErrTagConfig))
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// SpriteResult reports a generated sprite sheet.
type SpriteResult struct {
	Path     string
	Width    int
	Height   int
	Bytes    int64
	CSS      string
	Missing  []string // sources replaced by a blank frame
	Warnings []string
}

// FaviconResult reports generated icon files.
type FaviconResult struct {
	Files []string
}

func (p Pose) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Source)
}
