package playback_test

import (
	"testing"

	"github.com/capcore/capcore/playback"
	"github.com/stretchr/testify/assert"
)

func TestRing_WriteReadRoundTrip(t *testing.T) {
	r := playback.NewRing(16)
	n := r.Write([]byte{1, 2, 3, 4})
	assert.Equal(t, 4, n)
	assert.Equal(t, int64(4), r.Occupied())

	out := make([]byte, 4)
	n = r.Read(out)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{1, 2, 3, 4}, out)
	assert.Equal(t, int64(0), r.Occupied())
}

func TestRing_WrapsAround(t *testing.T) {
	r := playback.NewRing(4)
	r.Write([]byte{1, 2, 3})
	out := make([]byte, 3)
	r.Read(out)
	// writeTotal=3, readTotal=3; next write wraps past capacity boundary.
	r.Write([]byte{4, 5, 6})
	out2 := make([]byte, 3)
	n := r.Read(out2)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{4, 5, 6}, out2)
}

func TestRing_WriteTruncatesAtCapacity(t *testing.T) {
	r := playback.NewRing(4)
	n := r.Write([]byte{1, 2, 3, 4, 5, 6})
	assert.Equal(t, 4, n, "write truncates to vacancy")
}

func TestRing_Vacant(t *testing.T) {
	r := playback.NewRing(10)
	assert.Equal(t, int64(10), r.Vacant())
	r.Write([]byte{1, 2, 3})
	assert.Equal(t, int64(7), r.Vacant())
}

func TestRing_Reset(t *testing.T) {
	r := playback.NewRing(10)
	r.Write([]byte{1, 2, 3})
	r.Reset()
	assert.Equal(t, int64(0), r.Occupied())
	assert.Equal(t, int64(10), r.Vacant())
}
