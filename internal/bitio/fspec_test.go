package bitio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFspec_SingleBitFirstOctet(t *testing.T) {
	f := NewFspec()
	f.Set(0, 1)

	var buf bytes.Buffer
	require.NoError(t, f.WriteTo(&buf))

	assert.Equal(t, []byte{0x80}, buf.Bytes())
}

func TestFspec_HighestBitDeterminesOctetCount(t *testing.T) {
	f := NewFspec()
	f.Set(2, 3)

	var buf bytes.Buffer
	require.NoError(t, f.WriteTo(&buf))

	require.Len(t, buf.Bytes(), 3, "highest set bit in octet k must encode to k+1 octets")
	assert.Equal(t, byte(1), buf.Bytes()[0]&1, "non-final octets carry FX=1")
	assert.Equal(t, byte(1), buf.Bytes()[1]&1, "non-final octets carry FX=1")
	assert.Equal(t, byte(0), buf.Bytes()[2]&1, "final octet carries FX=0")
}

func TestFspec_ReadStopsAtFXZero(t *testing.T) {
	f, err := ReadFspec(bytes.NewReader([]byte{0x81, 0x40, 0xFF}))
	require.NoError(t, err)

	assert.True(t, f.IsSet(0, 1))
	assert.True(t, f.IsSet(1, 2))
	assert.False(t, f.IsSet(1, 1))
}

func TestFspec_ReadRejectsChainExceedingCap(t *testing.T) {
	overlong := bytes.Repeat([]byte{0x81}, maxFspecOctets+1)
	_, err := ReadFspec(bytes.NewReader(overlong))
	require.Error(t, err)

	var invalid *InvalidDataError
	assert.ErrorAs(t, err, &invalid)
}

func TestFspec_BitsRoundTripThroughOpenReaderWriter(t *testing.T) {
	f := NewFspec()
	f.Set(0, 1)
	f.Set(1, 5)

	var buf bytes.Buffer
	w := NewBitWriter(&buf)
	require.NoError(t, f.WriteBits(w))
	require.NoError(t, w.WriteBits(0x2A, 8), "payload following the fspec must stay byte-aligned")
	require.NoError(t, w.Flush())

	r := NewBitReader(bytes.NewReader(buf.Bytes()))
	decoded, err := ReadFspecBits(r)
	require.NoError(t, err)
	assert.True(t, decoded.IsSet(0, 1))
	assert.True(t, decoded.IsSet(1, 5))

	payload, err := r.ReadBits(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x2A), payload)
}

func TestFspec_RoundTrip(t *testing.T) {
	f := NewFspec()
	f.Set(0, 1)
	f.Set(0, 4)
	f.Set(1, 7)

	var buf bytes.Buffer
	require.NoError(t, f.WriteTo(&buf))

	decoded, err := ReadFspec(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.True(t, decoded.IsSet(0, 1))
	assert.True(t, decoded.IsSet(0, 4))
	assert.True(t, decoded.IsSet(1, 7))
	assert.False(t, decoded.IsSet(0, 2))
}
