package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/rulesync/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero.
//
// Symlink operations go through afero's optional Linker, LinkReader and
// Lstater interfaces when the wrapped Fs supports them (OsFs, ReadOnlyFs).
// For filesystems without symlink support (MemMapFs) links are simulated
// as files holding the link target, tracked so Lstat reports them as links.
type aferoFS struct {
	fs afero.Fs

	mu        sync.Mutex
	simulated map[string]struct{}
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs, simulated: make(map[string]struct{})}
}

// NewReadOnlyOS returns the OS filesystem behind afero's ReadOnlyFs.
// Every write fails, which makes it the filesystem for dry runs.
func NewReadOnlyOS() types.FS {
	return NewAferoFS(afero.NewReadOnlyFs(afero.NewOsFs()))
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	if dest, ok := a.simulatedTarget(name); ok {
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(name), dest)
		}
		return a.fs.Stat(dest)
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		if a.isSimulated(filepath.Join(name, entry.Name())) {
			entry = symlinkInfo{entry}
		}
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if linker, ok := a.fs.(afero.Linker); ok {
		err := linker.SymlinkIfPossible(oldname, newname)
		if !errors.Is(err, afero.ErrNoSymlink) {
			return err
		}
	}

	if _, err := a.Lstat(newname); err == nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrExist}
	}
	if err := afero.WriteFile(a.fs, newname, []byte(oldname), 0777); err != nil {
		return err
	}
	a.mu.Lock()
	a.simulated[filepath.Clean(newname)] = struct{}{}
	a.mu.Unlock()
	return nil
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if dest, ok := a.simulatedTarget(name); ok {
		return dest, nil
	}
	if reader, ok := a.fs.(afero.LinkReader); ok {
		dest, err := reader.ReadlinkIfPossible(name)
		if !errors.Is(err, afero.ErrNoReadlink) {
			return dest, err
		}
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		if err != nil {
			return nil, err
		}
		if a.isSimulated(name) {
			return symlinkInfo{info}, nil
		}
		return info, nil
	}

	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if a.isSimulated(name) {
		return symlinkInfo{info}, nil
	}
	return info, nil
}

func (a *aferoFS) Remove(name string) error {
	if err := a.fs.Remove(name); err != nil {
		return err
	}
	a.mu.Lock()
	delete(a.simulated, filepath.Clean(name))
	a.mu.Unlock()
	return nil
}

func (a *aferoFS) isSimulated(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.simulated[filepath.Clean(name)]
	return ok
}

func (a *aferoFS) simulatedTarget(name string) (string, bool) {
	if !a.isSimulated(name) {
		return "", false
	}
	content, err := afero.ReadFile(a.fs, name)
	if err != nil {
		return "", false
	}
	return string(content), true
}

// symlinkInfo marks a simulated link as a symlink
type symlinkInfo struct {
	fs.FileInfo
}

func (s symlinkInfo) Mode() fs.FileMode {
	return (s.FileInfo.Mode() &^ fs.ModeType) | fs.ModeSymlink
}

func (s symlinkInfo) IsDir() bool { return false }
