package audiomix_test

import (
	"testing"

	"github.com/capcore/capcore/audiomix"
	"github.com/capcore/capcore/project"
	"github.com/stretchr/testify/assert"
)

func TestMix_SumsTwoTracks(t *testing.T) {
	a := audiomix.Track{Samples: []float32{1, 1, 1, 1}, GainDB: 0, StereoMode: project.StereoModeStereo}
	b := audiomix.Track{Samples: []float32{0.5, 0.5}, GainDB: 0, StereoMode: project.StereoModeStereo, OffsetSamples: 0}

	out := make([]float32, 4)
	n := audiomix.Mix([]audiomix.Track{a, b}, 0, 2, out)

	assert.Equal(t, 2, n)
	assert.InDelta(t, 1.5, out[0], 1e-6)
	assert.InDelta(t, 1, out[2], 1e-6, "b's second frame is silent (exhausted), a's is not attenuated by b")
}

func TestMix_SilenceFloorMutes(t *testing.T) {
	tr := audiomix.Track{Samples: []float32{1, 1}, GainDB: -30, StereoMode: project.StereoModeStereo}
	out := make([]float32, 2)
	audiomix.Mix([]audiomix.Track{tr}, 0, 1, out)
	assert.Equal(t, float32(0), out[0], "-30dB is treated as -inf per spec")
}

func TestMix_OffsetAlignment(t *testing.T) {
	tr := audiomix.Track{Samples: []float32{1, 1}, GainDB: 0, StereoMode: project.StereoModeStereo, OffsetSamples: 3}
	out := make([]float32, 10)
	n := audiomix.Mix([]audiomix.Track{tr}, 0, 5, out)
	assert.Equal(t, 4, n, "the track's only frame sits at index 3, so material ends after 4 frames")
	assert.Equal(t, float32(0), out[0], "before offset: silence")
	assert.Equal(t, float32(0), out[4], "sample index 2 (< offset 3): silence")
	assert.Equal(t, float32(1), out[6], "sample index 3 (== offset): first real frame")
}

func TestMix_StereoModes(t *testing.T) {
	tr := audiomix.Track{Samples: []float32{0.2, 0.8}, GainDB: 0, StereoMode: project.StereoModeMonoL}
	out := make([]float32, 2)
	audiomix.Mix([]audiomix.Track{tr}, 0, 1, out)
	assert.InDelta(t, 0.2, out[0], 1e-6)
	assert.InDelta(t, 0.2, out[1], 1e-6)

	tr.StereoMode = project.StereoModeMonoMix
	audiomix.Mix([]audiomix.Track{tr}, 0, 1, out)
	assert.InDelta(t, 0.5, out[0], 1e-6)
}

func TestMix_AllTracksExhaustedShortensOutput(t *testing.T) {
	tr := audiomix.Track{Samples: []float32{1, 1, 1, 1}, GainDB: 0}
	out := make([]float32, 20)
	n := audiomix.Mix([]audiomix.Track{tr}, 0, 10, out)
	assert.Equal(t, 2, n, "only 2 frames of material exist")
}
