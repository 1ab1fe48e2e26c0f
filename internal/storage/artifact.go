package storage

import (
	"bufio"
	"errors"
	"io"
)

// ArtifactError wraps a failure to produce an output artifact.
type ArtifactError struct {
	// Op is the step that failed ("open", "write", "commit").
	Op string
	// Path is the artifact path.
	Path string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the artifact error.
func (e *ArtifactError) Error() string {
	return "storage: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ArtifactError) Unwrap() error { return e.Err }

// WriteArtifact opens path once, hands a buffered writer to fn, and commits
// the file only if fn succeeds. On any failure (or panic) the partial file
// is removed and the previous content of path, if any, is left untouched.
func WriteArtifact(path string, fn func(w io.Writer) error) (err error) {
	aw, err := NewAtomicWriter(path)
	if err != nil {
		return &ArtifactError{Op: "open", Path: path, Err: err}
	}

	committed := false
	defer func() {
		if !committed {
			if abortErr := aw.Abort(); abortErr != nil && err != nil {
				err = errors.Join(err, abortErr)
			}
		}
	}()

	bw := bufio.NewWriter(aw)
	if err := fn(bw); err != nil {
		return &ArtifactError{Op: "write", Path: path, Err: err}
	}
	if err := bw.Flush(); err != nil {
		return &ArtifactError{Op: "write", Path: path, Err: err}
	}

	committed = true
	if err := aw.Commit(); err != nil {
		return &ArtifactError{Op: "commit", Path: path, Err: err}
	}
	return nil
}
