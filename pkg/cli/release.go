package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ltth-app/siteops/pkg/cli/config"
	"github.com/ltth-app/siteops/pkg/domain/interfaces"
	"github.com/ltth-app/siteops/pkg/domain/model"
	"github.com/ltth-app/siteops/pkg/infra/fsstore"
	"github.com/ltth-app/siteops/pkg/usecase"
	"github.com/ltth-app/siteops/pkg/utils/progress"
)

const releaseDescription = `Selects the highest <prefix>_<version> directory in the incoming location,
archives the live artifact, deploys the candidate and updates the pointer and
metadata files.

Names use the full version: a prerelease candidate ltth_2.0.0-rc.1/ must ship
ltth_2.0.0-rc.1.zip, and the pointer becomes 2.0.0-rc.1.

The artifact must be a non-empty ZIP archive (checked by content, not by file
extension); an empty or non-ZIP artifact fails validation before anything is
changed.`

func cmdRelease() *cli.Command {
	var (
		repoCfg config.Repository
		gitCfg  config.Git
	)

	return &cli.Command{
		Name:        "release",
		Aliases:     []string{"r"},
		Usage:       "Release the highest-versioned candidate (full-version artifact names, ZIP content checked)",
		Description: releaseDescription,
		Flags:       append(repoCfg.Flags(), gitCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, _, err := newReleaseUseCase(c, &repoCfg, &gitCfg)
			if err != nil {
				return err
			}
			_, err = uc.Run(ctx)
			return err
		},
	}
}

func newReleaseUseCase(c *cli.Command, repoCfg *config.Repository, gitCfg *config.Git) (interfaces.ReleaseUseCase, model.Layout, error) {
	layout, notes, err := repoCfg.Resolve(c)
	if err != nil {
		return nil, model.Layout{}, err
	}

	opts := []usecase.ReleaseOption{
		usecase.WithLayout(layout),
		usecase.WithNotesLimit(notes),
		usecase.WithReporter(progress.New(os.Stdout)),
	}
	if committer := gitCfg.Committer(repoCfg.Root); committer != nil {
		opts = append(opts, usecase.WithCommitter(committer))
	}

	return usecase.NewRelease(fsstore.NewOS(repoCfg.Root, layout), opts...), layout, nil
}
