package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/urfave/cli/v3"

	"github.com/ltth-app/siteops/pkg/cli/config"
	"github.com/ltth-app/siteops/pkg/usecase"
	"github.com/ltth-app/siteops/pkg/utils/progress"
)

func cmdSprite() *cli.Command {
	var cfg config.Sprite

	return &cli.Command{
		Name:  "sprite",
		Usage: "Composite pose images into a sprite sheet and print its CSS",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			manifest, err := config.LoadSpriteManifest(cfg.Manifest)
			if err != nil {
				return err
			}
			if cfg.CSSOut != "" {
				manifest.CSSOutput = cfg.CSSOut
			}

			uc := usecase.NewSprite(osfs.New(cfg.BaseDir),
				usecase.WithSpriteReporter(progress.New(os.Stdout)),
			)
			result, err := uc.Build(ctx, manifest)
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout)
			fmt.Fprint(os.Stdout, result.CSS)
			return nil
		},
	}
}
