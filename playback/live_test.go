package playback_test

import (
	"testing"

	"github.com/capcore/capcore/audiorender"
	"github.com/capcore/capcore/playback"
	"github.com/capcore/capcore/project"
	"github.com/capcore/capcore/resample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClips() []audiorender.ClipTracks {
	samples := make([]float32, 2*audiorender.MixRate*2)
	for i := range samples {
		samples[i] = 0.25
	}
	return []audiorender.ClipTracks{{Mic: audiorender.NewMemorySource(samples, audiorender.MixRate)}}
}

func testConfig() *project.Configuration {
	return &project.Configuration{Timeline: project.Timeline{Segments: []project.TimelineSegment{
		{ClipIndex: 0, Start: 0, End: 10, Timescale: 1.0},
	}}}
}

func TestBuffer_FillProducesAudio(t *testing.T) {
	renderer := audiorender.NewRenderer(testClips())
	buf := playback.NewBuffer(renderer, resample.NewIdentity(), audiorender.MixRate, 2, 4)
	cfg := testConfig()
	require.True(t, buf.SetPlayhead(0, cfg))

	out := make([]byte, 4*2*256)
	buf.Fill(out, cfg, 4*2*4096) // pops from the still-empty ring, then prefills it
	buf.Fill(out, cfg, 4*2*4096)
	assert.NotEqual(t, []byte{0, 0, 0, 0}, out[0:4], "device output should not be all-zero once prefilled")
}

func TestBuffer_AudiblePlayheadClampsToZero(t *testing.T) {
	renderer := audiorender.NewRenderer(testClips())
	buf := playback.NewBuffer(renderer, resample.NewIdentity(), audiorender.MixRate, 2, 4)
	assert.Equal(t, 0.0, buf.AudiblePlayhead(10))
}

func TestBuffer_BufferReachingLimit(t *testing.T) {
	renderer := audiorender.NewRenderer(testClips())
	buf := playback.NewBuffer(renderer, resample.NewIdentity(), audiorender.MixRate, 2, 4)
	assert.False(t, buf.BufferReachingLimit(), "empty buffer has full vacancy, far from the back-pressure limit")
}
