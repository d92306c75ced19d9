package audiorender_test

import (
	"testing"

	"github.com/capcore/capcore/audiorender"
	"github.com/capcore/capcore/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cfg() *project.Configuration {
	return &project.Configuration{
		Timeline: project.Timeline{
			Segments: []project.TimelineSegment{
				{ClipIndex: 0, Start: 0, End: 1, Timescale: 1.0},
				{ClipIndex: 1, Start: 1, End: 2, Timescale: 2.0},
			},
		},
	}
}

func clips() []audiorender.ClipTracks {
	micSamples := make([]float32, 2*audiorender.MixRate)
	for i := range micSamples {
		micSamples[i] = 0.5
	}
	return []audiorender.ClipTracks{
		{Mic: audiorender.NewMemorySource(micSamples, audiorender.MixRate)},
		{Mic: audiorender.NewMemorySource(micSamples, audiorender.MixRate)},
	}
}

func TestRenderer_ProducesSamplesFromMic(t *testing.T) {
	r := audiorender.NewRenderer(clips())
	c := cfg()
	require.True(t, r.SetPlayhead(0, c))

	n, out, ok := r.Render(100, c)
	require.True(t, ok)
	assert.Equal(t, 100, n)
	assert.InDelta(t, 0.5, out[0], 1e-6)
}

func TestRenderer_TimescaleMutes(t *testing.T) {
	r := audiorender.NewRenderer(clips())
	c := cfg()
	require.True(t, r.SetPlayhead(1.5, c))

	_, _, ok := r.Render(100, c)
	assert.False(t, ok, "timescale != 1 renders silent per §4.3/§9")
}

func TestRenderer_MuteDiscipline(t *testing.T) {
	r := audiorender.NewRenderer(clips())
	c := cfg()
	c.Audio.Mute = true
	require.True(t, r.SetPlayhead(0, c))

	n, out, ok := r.Render(10, c)
	require.True(t, ok)
	assert.Equal(t, 10, n)
	assert.Equal(t, make([]float32, 20), out, "project.audio.mute emits -inf dB on every track")
}

func TestRenderer_NoTracksIsSilent(t *testing.T) {
	r := audiorender.NewRenderer([]audiorender.ClipTracks{{}})
	c := &project.Configuration{Timeline: project.Timeline{Segments: []project.TimelineSegment{
		{ClipIndex: 0, Start: 0, End: 1, Timescale: 1.0},
	}}}
	require.True(t, r.SetPlayhead(0, c))
	_, _, ok := r.Render(10, c)
	assert.False(t, ok)
}
