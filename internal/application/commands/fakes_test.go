package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"capotokeys/internal/application"
	"capotokeys/internal/domain"
)

// memRepo is an in-memory OutputRepository; each write advances the clock
type memRepo struct {
	files    map[string][]byte
	mtimes   map[string]time.Time
	clock    time.Time
	writeErr error
}

func newMemRepo(names ...string) *memRepo {
	r := &memRepo{
		files:  make(map[string][]byte),
		mtimes: make(map[string]time.Time),
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, n := range names {
		_ = r.Write(n, []byte(n))
	}
	return r
}

func (r *memRepo) Dir() string { return "/outputs" }

func (r *memRepo) List() ([]domain.OutputFile, error) {
	var out []domain.OutputFile
	for name, data := range r.files {
		if !domain.IsSupportedOutput(name) {
			continue
		}
		out = append(out, domain.OutputFile{
			Name:    name,
			Ext:     domain.OutputExtension(name),
			Size:    int64(len(data)),
			ModTime: r.mtimes[name],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRepo) Names() (domain.NameSet, error) {
	set := make(domain.NameSet, len(r.files))
	for name := range r.files {
		set[name] = struct{}{}
	}
	return set, nil
}

func (r *memRepo) Read(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, application.ErrNotFound)
	}
	return data, nil
}

func (r *memRepo) Write(name string, data []byte) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	if err := checkName(name); err != nil {
		return err
	}
	r.clock = r.clock.Add(time.Second)
	r.files[name] = append([]byte(nil), data...)
	r.mtimes[name] = r.clock
	return nil
}

func (r *memRepo) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, ok := r.files[name]; !ok {
		return fmt.Errorf("%s: %w", name, application.ErrNotFound)
	}
	delete(r.files, name)
	delete(r.mtimes, name)
	return nil
}

func (r *memRepo) Path(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	return filepath.Join(r.Dir(), name), nil
}

func checkName(name string) error {
	if strings.ContainsAny(name, `/\`) || name == ".." {
		return &application.PathError{Name: name}
	}
	return nil
}

// stubRenderer writes a marker line per page
type stubRenderer struct {
	pages int
	err   error
}

func (s *stubRenderer) Render(doc domain.Document, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	s.pages = len(doc.Pages)
	_, err := fmt.Fprintf(w, "%%PDF stub %d pages", len(doc.Pages))
	return err
}

var errBoom = errors.New("boom")
