package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonBlockingReaderReadsLines(t *testing.T) {
	r := NewNonBlockingReader(strings.NewReader("first line\n  second line  \n"))

	line, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first line", line)

	line, err = r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second line", line)
}

func TestNonBlockingReaderLastLineWithoutNewline(t *testing.T) {
	r := NewNonBlockingReader(strings.NewReader("no trailing newline"))

	line, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "no trailing newline", line)
}

func TestNonBlockingReaderEOF(t *testing.T) {
	r := NewNonBlockingReader(strings.NewReader(""))

	_, err := r.ReadLine(context.Background())
	require.Error(t, err)
}

func TestNonBlockingReaderCancellation(t *testing.T) {
	// A blocking pipe-like reader that never delivers.
	r := NewNonBlockingReader(blockingReader{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestNewNonBlockingReaderNilPanics(t *testing.T) {
	assert.Panics(t, func() { NewNonBlockingReader(nil) })
}

type blockingReader struct{}

func (blockingReader) Read(_ []byte) (int, error) {
	select {}
}
