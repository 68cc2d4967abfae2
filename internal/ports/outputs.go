package ports

import (
	"io"

	"capotokeys/internal/domain"
)

// OutputRepository stores generated artifacts in a single flat directory.
// Names are bare file names; implementations reject names that resolve
// outside the directory.
type OutputRepository interface {
	// Dir returns the absolute outputs directory
	Dir() string

	// List returns the supported artifacts (txt, pdf) in the directory
	List() ([]domain.OutputFile, error)

	// Names returns every file name present, supported or not
	Names() (domain.NameSet, error)

	Read(name string) ([]byte, error)

	// Write replaces name atomically
	Write(name string, data []byte) error

	Delete(name string) error

	// Path resolves name to an absolute path inside Dir
	Path(name string) (string, error)
}

// DocumentRenderer turns a paginated document into a concrete file format
type DocumentRenderer interface {
	Render(doc domain.Document, w io.Writer) error
}
