package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer is the interface for output destinations.
type Writer interface {
	// Write sends serialized bytes to the output destination.
	Write(data []byte) error
}

// Manifest is anything that renders to a single named YAML document.
type Manifest interface {
	Name() string
	RenderManifest() ([]byte, error)
}

// StdoutWriter writes serialized YAML to os.Stdout.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a writer that sends output to the given writer.
// If w is nil, os.Stdout is used.
func NewStdoutWriter(w io.Writer) *StdoutWriter {
	if w == nil {
		w = os.Stdout
	}

	return &StdoutWriter{out: w}
}

// Write sends data to stdout.
func (sw *StdoutWriter) Write(data []byte) error {
	if _, err := sw.out.Write(data); err != nil {
		return fmt.Errorf("writing to stdout: %w", err)
	}

	return nil
}

// FileWriter writes serialized output to a file, creating parent
// directories as needed.
type FileWriter struct {
	path   string
	perm   os.FileMode
	logger *slog.Logger
}

// FileWriterOption configures a FileWriter.
type FileWriterOption func(*FileWriter)

// WithPermissions overrides the default file permissions (0644).
func WithPermissions(perm os.FileMode) FileWriterOption {
	return func(fw *FileWriter) {
		fw.perm = perm
	}
}

// WithLogger sets a logger for the FileWriter.
func WithLogger(logger *slog.Logger) FileWriterOption {
	return func(fw *FileWriter) {
		fw.logger = logger
	}
}

// NewFileWriter creates a writer that writes to the specified file path.
func NewFileWriter(path string, opts ...FileWriterOption) *FileWriter {
	fw := &FileWriter{
		path:   path,
		perm:   0o644,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(fw)
	}

	return fw
}

// Write creates parent directories and writes data to the file, replacing
// any previous content.
func (fw *FileWriter) Write(data []byte) error {
	dir := filepath.Dir(fw.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if _, err := os.Stat(fw.path); err == nil {
		fw.logger.Debug("overwriting existing file", slog.String("path", fw.path))
	}

	if err := os.WriteFile(fw.path, data, fw.perm); err != nil {
		return fmt.Errorf("writing file %s: %w", fw.path, err)
	}

	return nil
}

// Path returns the output file path.
func (fw *FileWriter) Path() string {
	return fw.path
}

// FileName is the file a manifest is written to: "{prefix}-{name}.yaml".
func FileName(prefix, name string) string {
	return prefix + "-" + name + ".yaml"
}

// DirWriter writes one file per manifest into a directory. Files from
// earlier runs that no manifest maps to are left untouched.
type DirWriter struct {
	dir  string
	opts []FileWriterOption
}

// NewDirWriter returns a DirWriter for dir. The options apply to every file.
func NewDirWriter(dir string, opts ...FileWriterOption) *DirWriter {
	return &DirWriter{dir: dir, opts: opts}
}

// Dir returns the output directory.
func (dw *DirWriter) Dir() string {
	return dw.dir
}

// Path returns the file path a manifest named name is written to.
func (dw *DirWriter) Path(prefix, name string) string {
	return filepath.Join(dw.dir, FileName(prefix, name))
}

// WriteAll creates the directory if needed and writes each manifest in
// order. It stops at the first failure and returns the paths written so
// far; those files stay on disk.
func (dw *DirWriter) WriteAll(prefix string, manifests []Manifest) ([]string, error) {
	if err := os.MkdirAll(dw.dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dw.dir, err)
	}

	written := make([]string, 0, len(manifests))

	for _, m := range manifests {
		data, err := m.RenderManifest()
		if err != nil {
			return written, fmt.Errorf("rendering %s: %w", m.Name(), err)
		}

		fw := NewFileWriter(dw.Path(prefix, m.Name()), dw.opts...)
		if err := fw.Write(data); err != nil {
			return written, err
		}

		written = append(written, fw.Path())
	}

	return written, nil
}

// WriteStream renders all manifests into one multi-document YAML stream
// and sends it to w.
func WriteStream(w Writer, manifests []Manifest) error {
	docs := make([][]byte, 0, len(manifests))

	for _, m := range manifests {
		data, err := m.RenderManifest()
		if err != nil {
			return fmt.Errorf("rendering %s: %w", m.Name(), err)
		}

		docs = append(docs, data)
	}

	return w.Write(JoinDocuments(docs))
}
