package bitio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitWriter_MSBFirstAndFlushPads(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)

	require.NoError(t, w.WriteBits(1, 1))
	require.NoError(t, w.WriteBits(0, 3))
	require.NoError(t, w.Flush())

	assert.Equal(t, []byte{0x80}, buf.Bytes())
}

func TestBitWriter_TruncatesOverflowBits(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)

	// 0x1FF has bits set beyond the low 8; only the low 8 must be written.
	require.NoError(t, w.WriteBits(0x1FF, 8))
	require.NoError(t, w.Flush())

	assert.Equal(t, []byte{0xFF}, buf.Bytes())
}

func TestBitWriter_AutoFlushesFullBytesWithoutExplicitFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)

	require.NoError(t, w.WriteBits(0x2A, 8))
	// No Flush() yet: a full byte must already be visible to the sink.
	assert.Equal(t, []byte{0x2A}, buf.Bytes())

	require.NoError(t, w.WriteBits(0x80, 8))
	assert.Equal(t, []byte{0x2A, 0x80}, buf.Bytes())
}

func TestBitWriter_RoundTripsWithReader(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)

	require.NoError(t, w.WriteBits(0b010, 3))
	require.NoError(t, w.WriteBits(1, 1))
	require.NoError(t, w.WriteBits(0, 1))
	require.NoError(t, w.WriteBits(1, 1))
	require.NoError(t, w.WriteBits(0, 1))
	require.NoError(t, w.WriteBits(0, 1))
	require.NoError(t, w.Flush())

	assert.Equal(t, []byte{0x54}, buf.Bytes())

	r := NewBitReader(bytes.NewReader(buf.Bytes()))
	v, err := r.ReadBits(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x54), v)
}
