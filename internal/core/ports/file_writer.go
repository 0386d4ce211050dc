package ports

// FileWriter writes generated files.
//
//go:generate mockgen -source=file_writer.go -destination=mocks/mock_file_writer.go -package=mocks
type FileWriter interface {
	// WriteFile creates parent directories as needed and writes data to path.
	// It reports whether the file content changed.
	WriteFile(path string, data []byte) (bool, error)
}
