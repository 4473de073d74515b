package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTail(t *testing.T) {
	t.Parallel()

	tail := NewTail(int64(len("old\n")))

	lines, err := tail.Read(strings.NewReader("old\nnew 1\nnew"))
	require.NoError(t, err)
	assert.Equal(t, []string{"new 1"}, lines)
	assert.Equal(t, int64(13), tail.Offset())

	lines, err = tail.Read(strings.NewReader("old\nnew 1\nnew 2\r\nnew 3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"new 2", "new 3"}, lines)

	lines, err = tail.Read(strings.NewReader("old\nnew 1\nnew 2\r\nnew 3\n"))
	require.NoError(t, err)
	assert.Empty(t, lines)

	// A truncated file starts over.
	lines, err = tail.Read(strings.NewReader("fresh\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, lines)
}
