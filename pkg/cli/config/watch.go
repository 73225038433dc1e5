package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/ltth-app/siteops/pkg/usecase"
)

// Watch holds watch mode configuration
type Watch struct {
	Settle time.Duration
}

// Flags returns CLI flags for watch configuration
func (c *Watch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "settle",
			Usage:       "Quiet period after the last change before releasing",
			Value:       usecase.DefaultSettle,
			Destination: &c.Settle,
			Sources:     cli.EnvVars("SITEOPS_SETTLE"),
		},
	}
}
