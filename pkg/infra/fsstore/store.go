package fsstore

import (
	"context"
	"io"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/m-mizutani/goerr/v2"

	"github.com/ltth-app/siteops/pkg/domain/interfaces"
	"github.com/ltth-app/siteops/pkg/domain/model"
	"github.com/ltth-app/siteops/pkg/domain/types"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Store implements interfaces.ReleaseStore on a billy filesystem rooted at
// the site repository.
type Store struct {
	fs     billy.Filesystem
	layout model.Layout
}

var _ interfaces.ReleaseStore = (*Store)(nil)

// New creates a Store over fs.
func New(fs billy.Filesystem, layout model.Layout) *Store {
	return &Store{fs: fs, layout: layout}
}

// NewOS creates a Store over the directory root on the local disk.
func NewOS(root string, layout model.Layout) *Store {
	return New(osfs.New(root), layout)
}

// ListCandidates implements ReleaseStore.
func (s *Store) ListCandidates(ctx context.Context) ([]interfaces.DirEntry, error) {
	ok, err := s.exists(s.layout.IncomingDir)
	if err != nil || !ok {
		return nil, err
	}

	infos, err := s.fs.ReadDir(s.layout.IncomingDir)
	if err != nil {
		return nil, ioErr(err, "failed to list incoming location", s.layout.IncomingDir)
	}

	entries := make([]interfaces.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, interfaces.DirEntry{Name: info.Name(), IsDir: info.IsDir()})
	}
	return entries, nil
}

// CandidateFileSize implements ReleaseStore.
func (s *Store) CandidateFileSize(ctx context.Context, candidate, file string) (int64, bool, error) {
	return s.size(path.Join(s.layout.CandidateDir(candidate), file))
}

// OpenCandidateFile implements ReleaseStore.
func (s *Store) OpenCandidateFile(ctx context.Context, candidate, file string) (io.ReadCloser, error) {
	p := path.Join(s.layout.CandidateDir(candidate), file)
	f, err := s.fs.Open(p)
	if err != nil {
		return nil, ioErr(err, "failed to open candidate file", p)
	}
	return f, nil
}

// ReadPointer implements ReleaseStore.
func (s *Store) ReadPointer(ctx context.Context) (string, bool, error) {
	p := s.layout.PointerPath()
	data, err := util.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, ioErr(err, "failed to read release pointer", p)
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// WritePointer implements ReleaseStore.
func (s *Store) WritePointer(ctx context.Context, version string) error {
	return s.writeFile(s.layout.PointerPath(), []byte(version))
}

// LiveArtifactSize implements ReleaseStore.
func (s *Store) LiveArtifactSize(ctx context.Context) (int64, bool, error) {
	return s.size(s.layout.LiveArtifactPath())
}

// ReadArchiveEntry implements ReleaseStore.
func (s *Store) ReadArchiveEntry(ctx context.Context, version string) (int64, bool, error) {
	return s.size(s.layout.ArchivePath(version))
}

// WriteArchiveEntry implements ReleaseStore.
func (s *Store) WriteArchiveEntry(ctx context.Context, version string) error {
	dst := s.layout.ArchivePath(version)
	if err := s.fs.MkdirAll(s.layout.ArchiveDir, dirPerm); err != nil {
		return ioErr(err, "failed to create archive location", s.layout.ArchiveDir)
	}
	return s.copyFile(s.layout.LiveArtifactPath(), dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
}

// DeployArtifact implements ReleaseStore.
func (s *Store) DeployArtifact(ctx context.Context, candidate, file string) error {
	if err := s.fs.MkdirAll(s.layout.LiveDir, dirPerm); err != nil {
		return ioErr(err, "failed to create live location", s.layout.LiveDir)
	}
	src := path.Join(s.layout.CandidateDir(candidate), file)
	return s.copyFile(src, s.layout.LiveArtifactPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// WriteMetadata implements ReleaseStore.
func (s *Store) WriteMetadata(ctx context.Context, data []byte) error {
	return s.writeFile(s.layout.MetadataPath(), data)
}

// ProcessedExists implements ReleaseStore.
func (s *Store) ProcessedExists(ctx context.Context, candidate string) (bool, error) {
	return s.exists(s.layout.ProcessedPath(candidate))
}

// MoveCandidate implements ReleaseStore.
func (s *Store) MoveCandidate(ctx context.Context, candidate string) error {
	if err := s.fs.MkdirAll(s.layout.ProcessedDir, dirPerm); err != nil {
		return ioErr(err, "failed to create processed location", s.layout.ProcessedDir)
	}
	src := s.layout.CandidateDir(candidate)
	dst := s.layout.ProcessedPath(candidate)
	if err := s.fs.Rename(src, dst); err != nil {
		return goerr.Wrap(err, "failed to move candidate",
			goerr.V("from", src), goerr.V("to", dst), goerr.T(types.ErrTagIO))
	}
	return nil
}

// RemoveCandidate implements ReleaseStore.
func (s *Store) RemoveCandidate(ctx context.Context, candidate string) error {
	p := s.layout.CandidateDir(candidate)
	if err := util.RemoveAll(s.fs, p); err != nil {
		return ioErr(err, "failed to remove candidate", p)
	}
	return nil
}

func (s *Store) exists(p string) (bool, error) {
	_, err := s.fs.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, ioErr(err, "failed to stat", p)
	}
}

func (s *Store) size(p string) (int64, bool, error) {
	info, err := s.fs.Stat(p)
	switch {
	case err == nil:
		if info.IsDir() {
			return 0, false, nil
		}
		return info.Size(), true, nil
	case os.IsNotExist(err):
		return 0, false, nil
	default:
		return 0, false, ioErr(err, "failed to stat", p)
	}
}

func (s *Store) writeFile(p string, data []byte) error {
	if err := s.fs.MkdirAll(path.Dir(p), dirPerm); err != nil {
		return ioErr(err, "failed to create parent directory", path.Dir(p))
	}
	if err := util.WriteFile(s.fs, p, data, filePerm); err != nil {
		return ioErr(err, "failed to write file", p)
	}
	return nil
}

func (s *Store) copyFile(src, dst string, flag int) (err error) {
	in, err := s.fs.Open(src)
	if err != nil {
		return ioErr(err, "failed to open copy source", src)
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dst, flag, filePerm)
	if err != nil {
		return goerr.Wrap(err, "failed to open copy destination",
			goerr.V("from", src), goerr.V("to", dst), goerr.T(types.ErrTagIO))
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = ioErr(cerr, "failed to close copy destination", dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return goerr.Wrap(err, "failed to copy file",
			goerr.V("from", src), goerr.V("to", dst), goerr.T(types.ErrTagIO))
	}
	return nil
}

func ioErr(err error, msg, p string) error {
	return goerr.Wrap(err, msg, goerr.V("path", p), goerr.T(types.ErrTagIO))
}
