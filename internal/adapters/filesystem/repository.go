package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"capotokeys/internal/application"
	"capotokeys/internal/domain"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Repository implements ports.OutputRepository on a flat directory
type Repository struct {
	dir string
}

// NewRepository creates a repository rooted at dir. A leading ~ is expanded
// to the home directory; the directory is created on first write.
func NewRepository(dir string) *Repository {
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Repository{dir: dir}
}

// Dir returns the outputs directory
func (r *Repository) Dir() string {
	return r.dir
}

// List returns the supported artifacts sorted newest first
func (r *Repository) List() ([]domain.OutputFile, error) {
	entries, err := r.readDir()
	if err != nil {
		return nil, err
	}

	var files []domain.OutputFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !domain.IsSupportedOutput(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		files = append(files, domain.OutputFile{
			Name:    entry.Name(),
			Ext:     domain.OutputExtension(entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// Names returns every entry name in the directory
func (r *Repository) Names() (domain.NameSet, error) {
	entries, err := r.readDir()
	if err != nil {
		return nil, err
	}
	set := make(domain.NameSet, len(entries))
	for _, entry := range entries {
		set[entry.Name()] = struct{}{}
	}
	return set, nil
}

func (r *Repository) readDir() ([]os.DirEntry, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read outputs: %w", err)
	}
	return entries, nil
}

// Read returns the content of name
func (r *Repository) Read(name string) ([]byte, error) {
	path, err := r.existing(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Write replaces name with data through a temp file and rename
func (r *Repository) Write(name string, data []byte) error {
	dest, err := r.Path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create outputs dir: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, filePerm)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Delete removes name
func (r *Repository) Delete(name string) error {
	path, err := r.existing(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// Path maps a bare file name into the outputs directory. Names carrying a
// directory component or pointing at the directory itself are rejected.
func (r *Repository) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", &application.PathError{Name: name}
	}
	return filepath.Join(r.dir, name), nil
}

// existing resolves name, reports a missing file as ErrNotFound, and rejects
// symlinks that lead out of the directory
func (r *Repository) existing(name string) (string, error) {
	path, err := r.Path(name)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", name, application.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", &application.PathError{Name: name}
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	root, err := filepath.EvalSymlinks(r.dir)
	if err != nil {
		return "", err
	}
	if rel, err := filepath.Rel(root, resolved); err != nil || strings.HasPrefix(rel, "..") {
		return "", &application.PathError{Name: name}
	}
	return path, nil
}
