package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFadeEnvelope_MatchesSpecExample(t *testing.T) {
	start, end, fade := 0.0, 10.0, 1.0
	assert.InDelta(t, 0.0, fadeEnvelope(0, start, end, fade), 1e-9)
	assert.InDelta(t, 0.5, fadeEnvelope(0.5, start, end, fade), 1e-9)
	assert.InDelta(t, 1.0, fadeEnvelope(5, start, end, fade), 1e-9)
	assert.InDelta(t, 0.5, fadeEnvelope(9.5, start, end, fade), 1e-9)
	assert.InDelta(t, 0.0, fadeEnvelope(10, start, end, fade), 1e-9)
}

func TestParseColor_ValidAndMalformed(t *testing.T) {
	c := ParseColor("#FF8000")
	assert.InDelta(t, 1.0, c[0], 1e-6)
	assert.InDelta(t, 128.0/255, c[1], 1e-3)
	assert.InDelta(t, 0.0, c[2], 1e-6)
	assert.Equal(t, 1.0, c[3])

	bad := ParseColor("notacolor")
	assert.Equal(t, opaqueWhite, bad)
}

func TestInterpolatePosition_ClampsOutsideRange(t *testing.T) {
	kfs := []posKeyframe{{Time: 1, X: 0.2, Y: 0.2}, {Time: 2, X: 0.8, Y: 0.8}}
	x, y, ok := interpolatePosition(kfs, 0)
	assert.True(t, ok)
	assert.Equal(t, 0.2, x)
	assert.Equal(t, 0.2, y)

	x, y, ok = interpolatePosition(kfs, 1.5)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, x, 1e-9)
	assert.InDelta(t, 0.5, y, 1e-9)
}
