package backup

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	c, err := NewCodec()
	require.NoError(t, err)

	payload := []byte(strings.Repeat(`{"title":"Hamlet","rating":5}`, 200))

	compressed, err := c.Compress(payload)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(payload))

	restored, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, restored))
}

func TestCompressEmptyPayload(t *testing.T) {
	c, err := NewCodec()
	require.NoError(t, err)

	compressed, err := c.Compress(nil)
	require.NoError(t, err)

	restored, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, restored)
}

func TestDecompressGarbageIsError(t *testing.T) {
	c, err := NewCodec()
	require.NoError(t, err)

	_, err = c.Decompress([]byte("dit is geen zstd"))
	assert.Error(t, err)
}
