package page

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// ErrClosed is returned by [Surface.Draw] once the surface can no longer
// show frames.
var ErrClosed = errors.New("surface closed")

// Surface is a rendering target for page-based viewers.
type Surface interface {
	// Draw replaces the content shown on the surface with frame.
	Draw(frame string) error
}

// Buffer is an in-memory [Surface]. Safe for concurrent use.
//
// Create instances with [NewBuffer].
type Buffer struct {
	frame string
	draws int
	mu    sync.Mutex
}

// NewBuffer creates an empty [Buffer].
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Draw stores frame as the current content.
func (b *Buffer) Draw(frame string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frame = frame
	b.draws++

	return nil
}

// Frame returns the most recently drawn frame.
func (b *Buffer) Frame() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.frame
}

// Draws returns how many frames have been drawn.
func (b *Buffer) Draws() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.draws
}

// File is a [Surface] that rewrites the file at its path on every frame.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a [File] surface for path. The file is created on the
// first draw.
func NewFile(path string) *File {
	return &File{path: path}
}

// Draw writes frame to the file, replacing its previous content.
func (f *File) Draw(frame string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.WriteFile(f.path, []byte(frame), 0o644) //nolint:gosec // Output path comes from configuration.
	if err != nil {
		return fmt.Errorf("draw %s: %w", f.path, err)
	}

	return nil
}

// Writer is a [Surface] that appends every frame to an [io.Writer],
// followed by a newline.
type Writer struct {
	w  io.Writer
	mu sync.Mutex
}

// NewWriter creates a [Writer] surface writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Draw appends frame to the underlying writer.
func (w *Writer) Draw(frame string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := io.WriteString(w.w, frame+"\n")
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	return nil
}
