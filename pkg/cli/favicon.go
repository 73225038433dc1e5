package cli

import (
	"context"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/urfave/cli/v3"

	"github.com/ltth-app/siteops/pkg/cli/config"
	"github.com/ltth-app/siteops/pkg/usecase"
	"github.com/ltth-app/siteops/pkg/utils/progress"
)

func cmdFavicons() *cli.Command {
	var cfg config.Favicon

	return &cli.Command{
		Name:  "favicons",
		Usage: "Generate the favicon set and the social preview image",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc := usecase.NewFavicon(osfs.New(cfg.BaseDir), cfg.OutDir,
				usecase.WithFaviconReporter(progress.New(os.Stdout)),
			)
			_, err := uc.Generate(ctx)
			return err
		},
	}
}
