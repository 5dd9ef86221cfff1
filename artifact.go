package croreport

import (
	"bytes"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Artifact holds a finished export document and provides helpers for
// common output forms such as raw bytes, base64 encoding, and streaming
// readers.
//
// An Artifact is immutable; it is safe to call its methods multiple times.
type Artifact struct {
	name string
	data []byte
}

// NewArtifact wraps finished document content under the given file name.
func NewArtifact(name string, data []byte) *Artifact {
	return &Artifact{name: name, data: data}
}

// Name returns the artifact's file name.
func (a *Artifact) Name() string { return a.name }

// Bytes returns the raw document content.
func (a *Artifact) Bytes() []byte { return a.data }

// Base64 returns the document encoded as a standard base64 string
// (RFC 4648), convenient for embedding in JSON payloads.
func (a *Artifact) Base64() string {
	return base64.StdEncoding.EncodeToString(a.data)
}

// Reader returns an [*bytes.Reader] over the document content.
func (a *Artifact) Reader() *bytes.Reader {
	return bytes.NewReader(a.data)
}

// WriteTo writes the full document content to w. It implements [io.WriterTo].
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.data)
	return int64(n), err
}

// WriteToFile writes the document to the file at path, creating it if needed.
func (a *Artifact) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, a.data, perm)
}

// SaveDefault writes the document under its fixed name into the user's
// download directory and returns the full path. When no download directory
// is known it falls back to the current working directory.
func (a *Artifact) SaveDefault() (string, error) {
	dir := xdg.UserDirs.Download
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, a.name)
	if err := a.WriteToFile(path, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Len returns the size of the document in bytes.
func (a *Artifact) Len() int {
	return len(a.data)
}
