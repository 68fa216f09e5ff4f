package assets

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/matzehuels/brandkit/pkg/errors"
)

// DirSink writes artifacts to files under Dir. A job's files are committed
// together: every file is first written to a temporary sibling, existing
// destinations are moved aside, and if any rename fails the files already
// committed are rolled back to their previous contents (or removed when
// they did not exist). A failed Write leaves the directory as it found it.
type DirSink struct {
	Dir string
}

// NewDirSink returns a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Path returns where an artifact path lands on disk.
func (s *DirSink) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.Dir, rel)
}

// rename is os.Rename; tests replace it to fail partway through a commit.
var rename = os.Rename

// staged is one file waiting to be committed.
type staged struct {
	tmp    string // new contents
	dst    string
	backup string // previous contents of dst, empty when dst did not exist
}

// Write implements Sink.
func (s *DirSink) Write(ctx context.Context, artifacts []Artifact) error {
	var files []*staged
	discard := func() {
		for _, f := range files {
			os.Remove(f.tmp)
		}
	}

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			discard()
			return err
		}
		dst := s.Path(a.Path)
		if fi, err := os.Lstat(dst); err == nil && !fi.Mode().IsRegular() {
			discard()
			return errors.New(errors.ErrCodeWriteFailed, "write %s: destination exists and is not a regular file", dst)
		}
		tmp, err := stage(dst, a.Data)
		if err != nil {
			discard()
			return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", dst)
		}
		files = append(files, &staged{tmp: tmp, dst: dst})
	}

	for i, f := range files {
		if err := commit(f); err != nil {
			rollback(files[:i])
			for _, rest := range files[i:] {
				os.Remove(rest.tmp)
			}
			return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", f.dst)
		}
	}
	for _, f := range files {
		if f.backup != "" {
			os.Remove(f.backup)
		}
	}
	return nil
}

// commit moves any existing destination aside, then renames the new
// contents into place. On failure the destination is restored.
func commit(f *staged) error {
	if _, err := os.Lstat(f.dst); err == nil {
		f.backup = f.tmp + ".bak"
		if err := rename(f.dst, f.backup); err != nil {
			f.backup = ""
			return err
		}
	}
	if err := rename(f.tmp, f.dst); err != nil {
		if f.backup != "" {
			rename(f.backup, f.dst)
			f.backup = ""
		}
		return err
	}
	return nil
}

// rollback undoes committed files, newest first.
func rollback(files []*staged) {
	for i := len(files) - 1; i >= 0; i-- {
		f := files[i]
		if f.backup != "" {
			rename(f.backup, f.dst)
		} else {
			os.Remove(f.dst)
		}
	}
}

func stage(dst string, data []byte) (string, error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return "", err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}

// MemorySink keeps artifacts in memory, keyed by path. It is safe for
// concurrent use.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string]Artifact
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string]Artifact)}
}

// Write implements Sink.
func (s *MemorySink) Write(ctx context.Context, artifacts []Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range artifacts {
		s.files[a.Path] = a
	}
	return nil
}

// Get returns the artifact stored at path.
func (s *MemorySink) Get(path string) (Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.files[path]
	return a, ok
}

// Paths returns every stored path, sorted.
func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
