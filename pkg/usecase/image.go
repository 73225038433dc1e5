package usecase

import (
	"image"
	"image/png"
	"path"

	// registered decoders for sprite sources
	_ "image/gif"
	_ "image/jpeg"

	"github.com/go-git/go-billy/v5"
	"github.com/m-mizutani/goerr/v2"
	_ "golang.org/x/image/webp"

	"github.com/ltth-app/siteops/pkg/domain/types"
)

func writePNG(fs billy.Filesystem, p string, img image.Image) (err error) {
	if err := fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", path.Dir(p)), goerr.T(types.ErrTagIO))
	}

	f, err := fs.Create(p)
	if err != nil {
		return goerr.Wrap(err, "failed to create image file", goerr.V("path", p), goerr.T(types.ErrTagIO))
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = goerr.Wrap(cerr, "failed to close image file", goerr.V("path", p), goerr.T(types.ErrTagIO))
		}
	}()

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		return goerr.Wrap(err, "failed to encode png", goerr.V("path", p), goerr.T(types.ErrTagIO))
	}
	return nil
}

func readImage(fs billy.Filesystem, p string) (image.Image, string, error) {
	f, err := fs.Open(p)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to open image", goerr.V("path", p), goerr.T(types.ErrTagIO))
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to decode image", goerr.V("path", p), goerr.T(types.ErrTagValidation))
	}
	return img, format, nil
}

func readImageConfig(fs billy.Filesystem, p string) (image.Config, error) {
	f, err := fs.Open(p)
	if err != nil {
		return image.Config{}, goerr.Wrap(err, "failed to open image", goerr.V("path", p), goerr.T(types.ErrTagIO))
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, goerr.Wrap(err, "failed to decode image header", goerr.V("path", p), goerr.T(types.ErrTagValidation))
	}
	return cfg, nil
}
