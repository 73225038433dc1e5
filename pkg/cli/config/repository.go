package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/ltth-app/siteops/pkg/domain/model"
	"github.com/ltth-app/siteops/pkg/domain/types"
)

const (
	localConfigName = "siteops.toml"
	userConfigName  = "siteops/config.toml"
)

// Repository holds the site repository location and its layout. Values come
// from defaults, then the config file, then explicitly set flags.
type Repository struct {
	Root       string
	ConfigPath string

	layout model.Layout
	notes  model.NotesLimit
}

// Flags returns CLI flags for repository configuration
func (c *Repository) Flags() []cli.Flag {
	def := model.DefaultLayout()
	lim := model.DefaultNotesLimit()

	layoutFlag := func(name, usage, value string, dst *string) cli.Flag {
		return &cli.StringFlag{
			Name:        name,
			Usage:       usage,
			Value:       value,
			Destination: dst,
			Sources:     cli.EnvVars(envName(name)),
		}
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "root",
			Aliases:     []string{"r"},
			Usage:       "Site repository root",
			Value:       ".",
			Destination: &c.Root,
			Sources:     cli.EnvVars("SITEOPS_ROOT"),
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Config file (TOML or YAML)",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("SITEOPS_CONFIG"),
		},
		layoutFlag("prefix", "Vendor prefix of candidate directories", def.Prefix, &c.layout.Prefix),
		layoutFlag("incoming", "Incoming candidates directory", def.IncomingDir, &c.layout.IncomingDir),
		layoutFlag("live-dir", "Live release directory", def.LiveDir, &c.layout.LiveDir),
		layoutFlag("archive-dir", "Archive directory", def.ArchiveDir, &c.layout.ArchiveDir),
		layoutFlag("processed-dir", "Processed candidates directory", def.ProcessedDir, &c.layout.ProcessedDir),
		layoutFlag("live-artifact", "File name of the live artifact", def.LiveArtifact, &c.layout.LiveArtifact),
		layoutFlag("pointer-file", "File name of the release pointer", def.PointerFile, &c.layout.PointerFile),
		layoutFlag("metadata-file", "File name of the release metadata", def.MetadataFile, &c.layout.MetadataFile),
		layoutFlag("notes-file", "File name of the changelog inside a candidate", def.NotesFile, &c.layout.NotesFile),
		&cli.IntFlag{
			Name:        "max-note-lines",
			Usage:       "Maximum changelog lines copied into metadata (0 disables)",
			Value:       lim.MaxLines,
			Destination: &c.notes.MaxLines,
			Sources:     cli.EnvVars("SITEOPS_MAX_NOTE_LINES"),
		},
		&cli.IntFlag{
			Name:        "max-note-chars",
			Usage:       "Maximum changelog characters copied into metadata (0 disables)",
			Value:       lim.MaxChars,
			Destination: &c.notes.MaxChars,
			Sources:     cli.EnvVars("SITEOPS_MAX_NOTE_CHARS"),
		},
	}
}

// Resolve merges defaults, the config file and the flags set on cmd.
func (c *Repository) Resolve(cmd *cli.Command) (model.Layout, model.NotesLimit, error) {
	file := File{
		Layout: model.DefaultLayout(),
		Notes:  model.DefaultNotesLimit(),
	}

	path, err := c.configFile()
	if err != nil {
		return model.Layout{}, model.NotesLimit{}, err
	}
	if path != "" {
		if err := LoadFile(path, &file); err != nil {
			return model.Layout{}, model.NotesLimit{}, err
		}
	}

	layout, notes := file.Layout, file.Notes
	overrides := []struct {
		flag string
		dst  *string
		src  string
	}{
		{"prefix", &layout.Prefix, c.layout.Prefix},
		{"incoming", &layout.IncomingDir, c.layout.IncomingDir},
		{"live-dir", &layout.LiveDir, c.layout.LiveDir},
		{"archive-dir", &layout.ArchiveDir, c.layout.ArchiveDir},
		{"processed-dir", &layout.ProcessedDir, c.layout.ProcessedDir},
		{"live-artifact", &layout.LiveArtifact, c.layout.LiveArtifact},
		{"pointer-file", &layout.PointerFile, c.layout.PointerFile},
		{"metadata-file", &layout.MetadataFile, c.layout.MetadataFile},
		{"notes-file", &layout.NotesFile, c.layout.NotesFile},
	}
	for _, o := range overrides {
		if cmd.IsSet(o.flag) {
			*o.dst = o.src
		}
	}
	if cmd.IsSet("max-note-lines") {
		notes.MaxLines = c.notes.MaxLines
	}
	if cmd.IsSet("max-note-chars") {
		notes.MaxChars = c.notes.MaxChars
	}
	if notes.Marker == "" {
		notes.Marker = model.DefaultNotesLimit().Marker
	}

	if err := layout.Validate(); err != nil {
		return model.Layout{}, model.NotesLimit{}, err
	}
	return layout, notes, nil
}

// IncomingPath is the incoming directory on disk.
func (c *Repository) IncomingPath(layout model.Layout) string {
	return filepath.Join(c.Root, filepath.FromSlash(layout.IncomingDir))
}

// configFile returns the explicit config path, or a discovered one, or "".
func (c *Repository) configFile() (string, error) {
	if c.ConfigPath != "" {
		if _, err := os.Stat(c.ConfigPath); err != nil {
			return "", goerr.Wrap(err, "config file not found", goerr.V("path", c.ConfigPath), goerr.T(types.ErrTagConfig))
		}
		return c.ConfigPath, nil
	}

	local := filepath.Join(c.Root, localConfigName)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	if p, err := xdg.SearchConfigFile(userConfigName); err == nil {
		return p, nil
	}
	return "", nil
}

func envName(flag string) string {
	return "SITEOPS_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
