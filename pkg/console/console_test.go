package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/focusmod/pkg/core"
)

var (
	_ core.IO = (*Console)(nil)
	_ core.IO = (*Buffer)(nil)
)

func TestConsoleRoutesLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	c := New(&out, &errOut)
	c.SetNoColor(true)

	c.Write("installing")
	c.Comment("Executing: php artisan module:setup Blog")
	c.WriteError("Module installer error: exit status 1")

	assert.Equal(t, "installing\nExecuting: php artisan module:setup Blog\n", out.String())
	assert.Equal(t, "Module installer error: exit status 1\n", errOut.String())
}

func TestConsoleOutputIsRaw(t *testing.T) {
	var out, errOut bytes.Buffer
	c := New(&out, &errOut)

	n, err := c.Output().Write([]byte("partial chunk"))
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	assert.Equal(t, "partial chunk", out.String())
	assert.Empty(t, errOut.String())
}

func TestBufferRecordsLines(t *testing.T) {
	b := NewBuffer()

	b.Write("a")
	b.Comment("b")
	b.WriteError("c")
	b.WriteError("d")
	_, _ = b.Output().Write([]byte("raw"))

	assert.Len(t, b.Lines(), 4)
	assert.Equal(t, []string{"a"}, b.LinesAt(LevelInfo))
	assert.Equal(t, []string{"b"}, b.LinesAt(LevelComment))
	assert.Equal(t, []string{"c", "d"}, b.Errors())
	assert.Equal(t, "raw", b.RawOutput())
}
