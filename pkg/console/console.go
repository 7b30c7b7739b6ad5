// pkg/console/console.go
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	commentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Console writes messages to a terminal-like pair of streams
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	err     io.Writer
	noColor bool
}

// New creates a console writing info and comment lines to out and errors to errOut
func New(out, errOut io.Writer) *Console {
	return &Console{out: out, err: errOut}
}

// Stdio creates a console bound to the process stdout and stderr
func Stdio() *Console {
	return New(os.Stdout, os.Stderr)
}

// SetNoColor disables styling
func (c *Console) SetNoColor(noColor bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.noColor = noColor
}

// Write emits an informational line
func (c *Console) Write(msg string) {
	c.println(c.out, msg)
}

// Comment emits a comment-level line
func (c *Console) Comment(msg string) {
	c.println(c.out, c.render(commentStyle, msg))
}

// WriteError emits an error-level line
func (c *Console) WriteError(msg string) {
	c.println(c.err, c.render(errorStyle, msg))
}

// Output returns the raw subprocess output writer
func (c *Console) Output() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.out.Write(p)
	})
}

func (c *Console) render(style lipgloss.Style, msg string) string {
	if c.noColor {
		return msg
	}
	return style.Render(msg)
}

func (c *Console) println(w io.Writer, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(w, msg)
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) {
	return f(p)
}
