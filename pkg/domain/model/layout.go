package model

import (
	"path"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ltth-app/siteops/pkg/domain/types"
)

// Layout names every location the release pipeline touches, relative to
// the site repository root. Paths use forward slashes.
type Layout struct {
	Prefix       string `toml:"prefix" yaml:"prefix"`
	IncomingDir  string `toml:"incoming_dir" yaml:"incoming_dir"`
	LiveDir      string `toml:"live_dir" yaml:"live_dir"`
	ArchiveDir   string `toml:"archive_dir" yaml:"archive_dir"`
	ProcessedDir string `toml:"processed_dir" yaml:"processed_dir"`
	LiveArtifact string `toml:"live_artifact" yaml:"live_artifact"`
	PointerFile  string `toml:"pointer_file" yaml:"pointer_file"`
	MetadataFile string `toml:"metadata_file" yaml:"metadata_file"`
	NotesFile    string `toml:"notes_file" yaml:"notes_file"`
}

// DefaultLayout matches the download site's historical structure.
func DefaultLayout() Layout {
	return Layout{
		Prefix:       "ltth",
		IncomingDir:  "new_patch",
		LiveDir:      "app",
		ArchiveDir:   "app/archive",
		ProcessedDir: "released_patches",
		LiveArtifact: "ltth_latest.zip",
		PointerFile:  "CURRENT_VERSION.txt",
		MetadataFile: "CURRENT_RELEASE.json",
		NotesFile:    "changelog.txt",
	}
}

// Validate checks that no field is empty.
func (l Layout) Validate() error {
	fields := []struct{ name, value string }{
		{"prefix", l.Prefix},
		{"incoming_dir", l.IncomingDir},
		{"live_dir", l.LiveDir},
		{"archive_dir", l.ArchiveDir},
		{"processed_dir", l.ProcessedDir},
		{"live_artifact", l.LiveArtifact},
		{"pointer_file", l.PointerFile},
		{"metadata_file", l.MetadataFile},
		{"notes_file", l.NotesFile},
	}
	for _, f := range fields {
		if f.value == "" {
			return goerr.New("layout field is required", goerr.V("field", f.name), goerr.T(types.ErrTagConfig))
		}
	}
	if l.IncomingDir == l.ProcessedDir {
		return goerr.New("incoming_dir and processed_dir must differ",
			goerr.V("dir", l.IncomingDir), goerr.T(types.ErrTagConfig))
	}
	return nil
}

// CandidateName is the directory name of the candidate for v.
func (l Layout) CandidateName(v Version) string {
	return l.Prefix + "_" + v.String()
}

// ArtifactName is the archive file name carried by a candidate of version v,
// and the name it is preserved under in the archive.
func (l Layout) ArtifactName(version string) string {
	return l.Prefix + "_" + version + ".zip"
}

// CandidateDir is the path of a candidate directory.
func (l Layout) CandidateDir(name string) string {
	return path.Join(l.IncomingDir, name)
}

// ProcessedPath is where a released candidate directory ends up.
func (l Layout) ProcessedPath(name string) string {
	return path.Join(l.ProcessedDir, name)
}

// LiveArtifactPath is the path of the deployed artifact.
func (l Layout) LiveArtifactPath() string {
	return path.Join(l.LiveDir, l.LiveArtifact)
}

// PointerPath is the path of the release pointer file.
func (l Layout) PointerPath() string {
	return path.Join(l.LiveDir, l.PointerFile)
}

// MetadataPath is the path of the release metadata record.
func (l Layout) MetadataPath() string {
	return path.Join(l.LiveDir, l.MetadataFile)
}

// ArchivePath is the path of the archive entry for version. The pointer text
// it is keyed on is operator-controlled, so it goes through ArchiveKey and
// always stays a single entry inside ArchiveDir.
func (l Layout) ArchivePath(version string) string {
	return path.Join(l.ArchiveDir, l.ArtifactName(ArchiveKey(version)))
}

var separatorReplacer = strings.NewReplacer("/", "_", "\\", "_")

// ArchiveKey turns pointer text into a file name component by replacing
// path separators.
func ArchiveKey(version string) string {
	return separatorReplacer.Replace(version)
}
