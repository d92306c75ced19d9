package prerender_test

import (
	"testing"

	"github.com/capcore/capcore/audiorender"
	"github.com/capcore/capcore/prerender"
	"github.com/capcore/capcore/project"
	"github.com/capcore/capcore/resample"
	"github.com/stretchr/testify/assert"
)

func TestRender_BypassesResamplerOnMatchingFormat(t *testing.T) {
	samples := make([]float32, 2*audiorender.MixRate)
	clips := []audiorender.ClipTracks{{Mic: audiorender.NewMemorySource(samples, audiorender.MixRate)}}
	renderer := audiorender.NewRenderer(clips)
	cfg := &project.Configuration{Timeline: project.Timeline{Segments: []project.TimelineSegment{
		{ClipIndex: 0, Start: 0, End: 1, Timescale: 1.0},
	}}}

	device := resample.DeviceConfig{Rate: audiorender.MixRate, Channels: 2, Format: resample.FormatF32}
	buf := prerender.Render(renderer, cfg, device, 1.0)

	assert.Equal(t, audiorender.MixRate*2*4, buf.Len(), "1s @ 48kHz stereo f32, no resampling")
}

func TestBuffer_SetPlayheadClampsAndFillZeroPadsTail(t *testing.T) {
	samples := make([]float32, 2*audiorender.MixRate)
	for i := range samples {
		samples[i] = 0.5
	}
	clips := []audiorender.ClipTracks{{Mic: audiorender.NewMemorySource(samples, audiorender.MixRate)}}
	renderer := audiorender.NewRenderer(clips)
	cfg := &project.Configuration{Timeline: project.Timeline{Segments: []project.TimelineSegment{
		{ClipIndex: 0, Start: 0, End: 1, Timescale: 1.0},
	}}}
	device := resample.DeviceConfig{Rate: audiorender.MixRate, Channels: 2, Format: resample.FormatF32}
	buf := prerender.Render(renderer, cfg, device, 1.0)

	buf.SetPlayhead(100.0) // far past the end; must clamp
	out := make([]byte, 16)
	buf.Fill(out)
	for _, b := range out {
		assert.Equal(t, byte(0), b, "past-end fill is all silence")
	}
}
