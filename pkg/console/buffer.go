// pkg/console/buffer.go
package console

import (
	"bytes"
	"io"
	"sync"
)

// Level classifies a recorded message
type Level string

const (
	LevelInfo    Level = "info"
	LevelComment Level = "comment"
	LevelError   Level = "error"
)

// Line is one recorded message
type Line struct {
	Level Level
	Text  string
}

// Buffer is an in-memory IO that records every message.
// Useful for embedding and tests.
type Buffer struct {
	mu     sync.Mutex
	lines  []Line
	output bytes.Buffer
}

// NewBuffer creates an empty Buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Write(msg string)      { b.record(LevelInfo, msg) }
func (b *Buffer) Comment(msg string)    { b.record(LevelComment, msg) }
func (b *Buffer) WriteError(msg string) { b.record(LevelError, msg) }

// Output returns the writer collecting raw subprocess output
func (b *Buffer) Output() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.output.Write(p)
	})
}

// Lines returns a copy of all recorded messages
func (b *Buffer) Lines() []Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// LinesAt returns the text of messages recorded at level
func (b *Buffer) LinesAt(level Level) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, l := range b.lines {
		if l.Level == level {
			out = append(out, l.Text)
		}
	}
	return out
}

// Errors is shorthand for LinesAt(LevelError)
func (b *Buffer) Errors() []string {
	return b.LinesAt(LevelError)
}

// RawOutput returns everything written to Output
func (b *Buffer) RawOutput() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.output.String()
}

func (b *Buffer) record(level Level, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, Line{Level: level, Text: msg})
}
