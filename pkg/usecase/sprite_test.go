package usecase_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/ltth-app/siteops/pkg/domain/model"
	"github.com/ltth-app/siteops/pkg/domain/types"
	"github.com/ltth-app/siteops/pkg/usecase"
)

func putPNG(t *testing.T, fs billy.Filesystem, p string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	gt.NoError(t, png.Encode(&buf, img))
	put(t, fs, p, buf.Bytes())
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 2 && d(a.G, b.G) <= 2 && d(a.B, b.B) <= 2 && d(a.A, b.A) <= 2
}

func testManifest() model.SpriteManifest {
	return model.SpriteManifest{
		FrameWidth:  20,
		FrameHeight: 10,
		Output:      "assets/sprite.png",
		ImageURL:    "/assets/sprite.png",
		ClassName:   "mascot",
		Poses: []model.Pose{
			{Name: "default", Source: "src/red.png"},
			{Name: "waving", Source: "src/missing.png"},
			{Name: "winking", Source: "src/blue.png"},
		},
	}
}

func TestSprite_Build(t *testing.T) {
	fs := memfs.New()
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	putPNG(t, fs, "src/red.png", 64, 64, red)
	putPNG(t, fs, "src/blue.png", 8, 8, blue)

	m := testManifest()
	m.CSSOutput = "assets/sprite.css"

	result, err := usecase.NewSprite(fs).Build(context.Background(), m)
	gt.NoError(t, err)
	gt.Value(t, result.Width).Equal(60)
	gt.Value(t, result.Height).Equal(10)
	gt.Number(t, result.Bytes).Greater(int64(0))
	gt.Value(t, result.Missing).Equal([]string{"src/missing.png"})
	gt.Array(t, result.Warnings).Length(1)

	f, err := fs.Open("assets/sprite.png")
	gt.NoError(t, err)
	defer f.Close()
	sheet, err := png.Decode(f)
	gt.NoError(t, err)

	// scaling may shift channels by a rounding step
	gt.True(t, near(rgbaAt(sheet, 10, 5), red))
	gt.Value(t, rgbaAt(sheet, 30, 5).A).Equal(uint8(0))
	gt.True(t, near(rgbaAt(sheet, 50, 5), blue))

	css, err := util.ReadFile(fs, "assets/sprite.css")
	gt.NoError(t, err)
	gt.Value(t, string(css)).Equal(result.CSS)
}

func TestSprite_InvalidManifest(t *testing.T) {
	m := testManifest()
	m.Poses = nil

	_, err := usecase.NewSprite(memfs.New()).Build(context.Background(), m)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagConfig))
}

func TestSprite_UndecodableSource(t *testing.T) {
	fs := memfs.New()
	put(t, fs, "src/red.png", []byte("not an image"))

	m := testManifest()
	result, err := usecase.NewSprite(fs).Build(context.Background(), m)
	gt.NoError(t, err)
	gt.Array(t, result.Missing).Length(3)
}

func TestGenerateCSS(t *testing.T) {
	css := usecase.GenerateCSS(model.DefaultSpriteManifest())

	gt.String(t, css).Contains(".mascot-sprite {")
	gt.String(t, css).Contains("width: 200px;")
	gt.String(t, css).Contains("background-image: url('/assets/mascot-sprite.png');")
	gt.String(t, css).Contains("background-size: 1200px 200px;")
	gt.String(t, css).Contains(".mascot-default { background-position: 0px 0; }")
	gt.String(t, css).Contains(".mascot-waving { background-position: -200px 0; }")
	gt.String(t, css).Contains(".mascot-thinking { background-position: -1000px 0; }")

	// rules follow manifest order
	gt.True(t, strings.Index(css, ".mascot-winking") < strings.Index(css, ".mascot-happy"))
}
