// Package audiomix sums offset-aligned, gain/stereo-routed source tracks
// into a stereo interleaved f32 mix at a fixed rate.
package audiomix

import (
	"math"

	"github.com/capcore/capcore/project"
)

// SilenceFloorDB is the gain below which a track is treated as -infinity
// dB (silent) rather than being attenuated.
const SilenceFloorDB = -30.0

// Track is one offset-aligned, stereo-interleaved source contributing to
// the mix.
type Track struct {
	Samples       []float32 // stereo interleaved
	GainDB        float32
	StereoMode    project.StereoMode
	OffsetSamples int64
	Muted         bool
}

func (t Track) effectiveGain() float32 {
	if t.Muted || t.GainDB <= SilenceFloorDB {
		return 0
	}
	return float32(math.Pow(10, float64(t.GainDB)/20))
}

// frameCount returns the number of stereo frames this track carries.
func (t Track) frameCount() int64 {
	return int64(len(t.Samples) / 2)
}

// sampleAt returns the routed, gain-applied stereo frame for this track at
// absolute mix-sample index idx (idx = start_sample + k). Frames before or
// after the track's available range are silent.
func (t Track) sampleAt(idx int64) (l, r float32) {
	gain := t.effectiveGain()
	if gain == 0 {
		return 0, 0
	}
	local := idx - t.OffsetSamples
	if local < 0 || local >= t.frameCount() {
		return 0, 0
	}
	sl := t.Samples[2*local]
	sr := t.Samples[2*local+1]

	switch t.StereoMode {
	case project.StereoModeMonoL:
		return sl * gain, sl * gain
	case project.StereoModeMonoR:
		return sr * gain, sr * gain
	case project.StereoModeMonoMix:
		m := (sl + sr) * 0.5 * gain
		return m, m
	default: // StereoModeStereo
		return sl * gain, sr * gain
	}
}

// Mix writes the sum of all tracks over [startSample, startSample+n) into
// out (which must have capacity >= 2*n, stereo interleaved), and returns
// the number of frames actually produced. The result is n unless every
// track is exhausted before n frames (the caller then sees a shorter
// write and may treat the remainder as end-of-material).
func Mix(tracks []Track, startSample int64, n int, out []float32) int {
	if cap(out) < 2*n {
		out = make([]float32, 2*n)
	} else {
		out = out[:2*n]
	}
	for i := range out {
		out[i] = 0
	}

	maxAvailable := int64(0)
	for _, tr := range tracks {
		end := tr.OffsetSamples + tr.frameCount()
		if end > maxAvailable {
			maxAvailable = end
		}
	}

	actual := int64(n)
	if remaining := maxAvailable - startSample; remaining < actual {
		if remaining < 0 {
			remaining = 0
		}
		actual = remaining
	}

	for k := int64(0); k < actual; k++ {
		idx := startSample + k
		var l, r float32
		for _, tr := range tracks {
			dl, dr := tr.sampleAt(idx)
			l += dl
			r += dr
		}
		out[2*k] = l
		out[2*k+1] = r
	}

	return int(actual)
}
