package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ltth-app/siteops/pkg/domain/model"
	"github.com/ltth-app/siteops/pkg/domain/types"
)

// File is the optional configuration file. Keys that are absent keep their
// defaults.
type File struct {
	Layout model.Layout     `toml:"layout" yaml:"layout"`
	Notes  model.NotesLimit `toml:"notes" yaml:"notes"`
}

// LoadFile decodes a TOML or YAML file into v, chosen by extension. Fields
// of v that the file does not mention are left as they are.
func LoadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", path), goerr.T(types.ErrTagConfig))
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, v); err != nil {
			return goerr.Wrap(err, "failed to parse TOML", goerr.V("path", path), goerr.T(types.ErrTagConfig))
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return goerr.Wrap(err, "failed to parse YAML", goerr.V("path", path), goerr.T(types.ErrTagConfig))
		}
	default:
		return goerr.New("unsupported config file type", goerr.V("path", path), goerr.V("ext", ext), goerr.T(types.ErrTagConfig))
	}
	return nil
}

// LoadSpriteManifest reads a sprite manifest on top of the default mascot
// sheet. A manifest that lists poses replaces the default poses entirely.
func LoadSpriteManifest(path string) (model.SpriteManifest, error) {
	m := model.DefaultSpriteManifest()
	if path == "" {
		return m, nil
	}

	m.Poses = nil
	if err := LoadFile(path, &m); err != nil {
		return model.SpriteManifest{}, err
	}
	if len(m.Poses) == 0 {
		m.Poses = model.DefaultSpriteManifest().Poses
	}
	return m, nil
}
