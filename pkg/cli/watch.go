package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/ltth-app/siteops/pkg/cli/config"
	"github.com/ltth-app/siteops/pkg/usecase"
	"github.com/ltth-app/siteops/pkg/utils/logging"
)

func cmdWatch() *cli.Command {
	var (
		repoCfg  config.Repository
		gitCfg   config.Git
		watchCfg config.Watch
	)

	flags := append(repoCfg.Flags(), gitCfg.Flags()...)
	flags = append(flags, watchCfg.Flags()...)

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Release candidates as they arrive in the incoming directory",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			uc, layout, err := newReleaseUseCase(c, &repoCfg, &gitCfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := usecase.NewWatcher(uc, repoCfg.IncomingPath(layout), usecase.WithSettle(watchCfg.Settle))
			if err := w.Run(ctx); err != nil {
				return err
			}

			logger.Info("Watch shutdown complete")
			return nil
		},
	}
}
