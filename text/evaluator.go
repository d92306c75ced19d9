// Package text evaluates per-frame text overlay layout (bounds, opacity,
// color, font metrics) from keyframe tracks and fade envelopes.
package text

import "github.com/capcore/capcore/project"

const (
	maxFontSizePx  = 256
	refScreenHeight = 1080
	minSize        = 0.01
	maxSize        = 2.0
	minSizeScale   = 0.25
	maxSizeScale   = 4.0
	sizeScaleRef   = 0.2
)

// Frame is one TextSegment's evaluated state at a given frame time.
type Frame struct {
	Left, Top, Right, Bottom float64 // pixel bounds, clipped to [0,W]x[0,H]
	Opacity                  float64
	FontSizePx               float64
	Color                    [4]float64
	Content                  string
}

// At evaluates every enabled TextSegment covering time t against an
// outW x outH output resolution. Disabled or non-covering segments are
// omitted from the result.
func At(segments []project.TextSegment, t float64, outW, outH int) []Frame {
	var out []Frame
	for _, seg := range segments {
		if !seg.Enabled || t < seg.Start || t >= seg.End {
			continue
		}
		out = append(out, evaluateOne(seg, t, outW, outH))
	}
	return out
}

func evaluateOne(seg project.TextSegment, t float64, outW, outH int) Frame {
	rel := t - seg.Start
	if rel < 0 {
		rel = 0
	}

	cx, cy := seg.CenterX, seg.CenterY
	if x, y, ok := interpolatePosition(toPosKeyframes(seg.Keyframes.Position), rel); ok {
		cx, cy = x, y
	}
	cx = clamp(cx, 0, 1)
	cy = clamp(cy, 0, 1)

	sizeX := clamp(seg.SizeX, minSize, maxSize)
	sizeY := clamp(seg.SizeY, minSize, maxSize)

	left := (cx - sizeX/2) * float64(outW)
	right := (cx + sizeX/2) * float64(outW)
	top := (cy - sizeY/2) * float64(outH)
	bottom := (cy + sizeY/2) * float64(outH)

	left = clamp(left, 0, float64(outW))
	right = clamp(right, 0, float64(outW))
	top = clamp(top, 0, float64(outH))
	bottom = clamp(bottom, 0, float64(outH))
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}

	sizeScale := clamp(sizeY/sizeScaleRef, minSizeScale, maxSizeScale)
	heightScale := float64(outH) / refScreenHeight
	fontSizePx := float64(seg.FontSize) * sizeScale * heightScale
	if fontSizePx > maxFontSizePx {
		fontSizePx = maxFontSizePx
	}

	opacity := 1.0
	if v, ok := interpolateOpacity(toOpKeyframes(seg.Keyframes.Opacity), rel); ok {
		opacity = v
	}
	if seg.FadeDuration > 0 {
		opacity *= fadeEnvelope(t, seg.Start, seg.End, seg.FadeDuration)
	}
	opacity = clamp(opacity, 0, 1)

	return Frame{
		Left: left, Top: top, Right: right, Bottom: bottom,
		Opacity:    opacity,
		FontSizePx: fontSizePx,
		Color:      seg.Color,
		Content:    seg.Content,
	}
}

func toPosKeyframes(in []project.PositionKeyframe) []posKeyframe {
	out := make([]posKeyframe, len(in))
	for i, kf := range in {
		out[i] = posKeyframe{Time: kf.Time, X: kf.X, Y: kf.Y}
	}
	return out
}

func toOpKeyframes(in []project.OpacityKeyframe) []opKeyframe {
	out := make([]opKeyframe, len(in))
	for i, kf := range in {
		out[i] = opKeyframe{Time: kf.Time, Value: kf.Value}
	}
	return out
}

// fadeEnvelope is the product of two ramps: min(1, (t-start)/fade) for
// fade-in, min(1, (end-t)/fade) for fade-out, per §4.8.
func fadeEnvelope(t, start, end, fade float64) float64 {
	fadeIn := (t - start) / fade
	if fadeIn > 1 {
		fadeIn = 1
	}
	if fadeIn < 0 {
		fadeIn = 0
	}
	fadeOut := (end - t) / fade
	if fadeOut > 1 {
		fadeOut = 1
	}
	if fadeOut < 0 {
		fadeOut = 0
	}
	return fadeIn * fadeOut
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
