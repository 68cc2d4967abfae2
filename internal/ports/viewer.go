package ports

// FileViewer shows an output in the desktop's default application
type FileViewer interface {
	// Open hands the absolute path to the system viewer
	Open(path string) error
}
