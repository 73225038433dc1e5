package config

import (
	"github.com/urfave/cli/v3"

	"github.com/ltth-app/siteops/pkg/domain/interfaces"
	"github.com/ltth-app/siteops/pkg/infra/gitrepo"
)

// Git holds the optional release commit configuration
type Git struct {
	Commit bool
	Author string
	Email  string
}

// Flags returns CLI flags for git configuration
func (c *Git) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "commit",
			Usage:       "Commit the release changes to the site repository",
			Destination: &c.Commit,
			Sources:     cli.EnvVars("SITEOPS_COMMIT"),
		},
		&cli.StringFlag{
			Name:        "commit-author",
			Usage:       "Author name of the release commit",
			Value:       "siteops",
			Destination: &c.Author,
			Sources:     cli.EnvVars("SITEOPS_COMMIT_AUTHOR"),
		},
		&cli.StringFlag{
			Name:        "commit-email",
			Usage:       "Author email of the release commit",
			Destination: &c.Email,
			Sources:     cli.EnvVars("SITEOPS_COMMIT_EMAIL"),
		},
	}
}

// Committer returns the committer for root, or nil when committing is off.
func (c *Git) Committer(root string) interfaces.Committer {
	if !c.Commit {
		return nil
	}
	return gitrepo.New(root, gitrepo.Signature{Name: c.Author, Email: c.Email})
}
