package text

import (
	"strconv"
	"strings"
)

// opaqueWhite is the fallback color for malformed input, per §4.8.
var opaqueWhite = [4]float64{1, 1, 1, 1}

// ParseColor parses a "#RRGGBB" hex string into linear [0,1]^4 RGBA,
// falling back to opaque white on any malformed input.
func ParseColor(hex string) [4]float64 {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return opaqueWhite
	}
	r, errR := strconv.ParseUint(h[0:2], 16, 8)
	g, errG := strconv.ParseUint(h[2:4], 16, 8)
	b, errB := strconv.ParseUint(h[4:6], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return opaqueWhite
	}
	return [4]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}
