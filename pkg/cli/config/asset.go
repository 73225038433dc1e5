package config

import "github.com/urfave/cli/v3"

// Favicon holds favicon output configuration
type Favicon struct {
	BaseDir string
	OutDir  string
}

// Flags returns CLI flags for favicon configuration
func (c *Favicon) Flags() []cli.Flag {
	return []cli.Flag{
		baseDirFlag(&c.BaseDir),
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "Output directory, relative to the base directory",
			Value:       "assets",
			Destination: &c.OutDir,
			Sources:     cli.EnvVars("SITEOPS_FAVICON_OUT"),
		},
	}
}

// Sprite holds sprite sheet configuration
type Sprite struct {
	BaseDir  string
	Manifest string
	CSSOut   string
}

// Flags returns CLI flags for sprite configuration
func (c *Sprite) Flags() []cli.Flag {
	return []cli.Flag{
		baseDirFlag(&c.BaseDir),
		&cli.StringFlag{
			Name:        "manifest",
			Aliases:     []string{"m"},
			Usage:       "Sprite manifest (TOML or YAML); the mascot sheet when omitted",
			Destination: &c.Manifest,
			Sources:     cli.EnvVars("SITEOPS_SPRITE_MANIFEST"),
		},
		&cli.StringFlag{
			Name:        "css-out",
			Usage:       "Also write the CSS snippet to this path",
			Destination: &c.CSSOut,
			Sources:     cli.EnvVars("SITEOPS_SPRITE_CSS_OUT"),
		},
	}
}

func baseDirFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "base-dir",
		Usage:       "Directory that asset paths are relative to",
		Value:       ".",
		Destination: dst,
		Sources:     cli.EnvVars("SITEOPS_BASE_DIR"),
	}
}
