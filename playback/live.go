package playback

import (
	"github.com/capcore/capcore/audiorender"
	"github.com/capcore/capcore/project"
)

// ProcessingChunkFrames is the number of mix-rate frames the live path
// renders per generator iteration. Smaller than PrerenderedBuffer's 4096
// (§4.6) because the live path must keep the generator's latency low
// enough to stay ahead of the device callback.
const ProcessingChunkFrames = 1024

// deviceResampler is satisfied by both *resample.Resampler and
// *resample.Identity.
type deviceResampler interface {
	QueueAndProcess(frame []float32) []byte
	Flush() []byte
}

// Buffer is the LivePlaybackBuffer of §4.5: a ring buffer of device-format
// samples, filled from the AudioRenderer through a resampler, consumed by
// a realtime device callback.
type Buffer struct {
	ring       *Ring
	renderer   *audiorender.Renderer
	resampler  deviceResampler
	bytesPerFr int // bytes per device-format stereo(ish) frame

	deviceRate    int
	deviceChans   int
	sampleBytes   int
	generatedSecs float64
}

// NewBuffer constructs a LivePlaybackBuffer. capacity is one second of
// audio at the device format, per §4.5.
func NewBuffer(renderer *audiorender.Renderer, resampler deviceResampler, deviceRate, deviceChannels, sampleBytes int) *Buffer {
	bytesPerFrame := deviceChannels * sampleBytes
	capacity := deviceRate * bytesPerFrame
	return &Buffer{
		ring:        NewRing(capacity),
		renderer:    renderer,
		resampler:   resampler,
		bytesPerFr:  bytesPerFrame,
		deviceRate:  deviceRate,
		deviceChans: deviceChannels,
		sampleBytes: sampleBytes,
	}
}

// SetPlayhead resets the resampler's internal state by flushing it and
// discarding the output, clears the ring, and seeks the renderer to t
// (§4.5).
func (b *Buffer) SetPlayhead(t float64, cfg *project.Configuration) bool {
	b.resampler.Flush()
	b.ring.Reset()
	b.generatedSecs = t
	return b.renderer.SetPlayhead(t, cfg)
}

// Fill performs a non-blocking pop from the ring into out, zero-fills any
// remainder, then prefills the ring (rendering more audio) until occupancy
// reaches min(minHeadroom, capacity) or the renderer returns no more
// material.
func (b *Buffer) Fill(out []byte, cfg *project.Configuration, minHeadroom int) {
	n := b.ring.Read(out)
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
	b.prefill(cfg, minHeadroom)
}

func (b *Buffer) prefill(cfg *project.Configuration, minHeadroom int) {
	target := int64(minHeadroom)
	if cap := int64(b.ring.Capacity()); target > cap {
		target = cap
	}
	for b.ring.Occupied() < target {
		actual, samples, ok := b.renderer.Render(ProcessingChunkFrames, cfg)
		if !ok {
			break
		}
		chunk := b.resampler.QueueAndProcess(samples)
		if len(chunk) == 0 {
			break
		}
		written := b.ring.Write(chunk)
		b.generatedSecs += float64(actual) / float64(audiorender.MixRate)
		if written < len(chunk) {
			// Ring is full; back off until the consumer drains more.
			break
		}
	}
}

// AudiblePlayhead implements §3's AudibleLatencyModel: generated seconds
// minus what's still buffered (converted to seconds at device rate) minus
// the reported device latency, clamped to zero.
func (b *Buffer) AudiblePlayhead(deviceLatencySecs float64) float64 {
	occupiedFrames := float64(b.ring.Occupied()) / float64(b.bytesPerFr)
	audible := b.generatedSecs - occupiedFrames/float64(b.deviceRate) - deviceLatencySecs
	if audible < 0 {
		return 0
	}
	return audible
}

// BufferReachingLimit reports the back-pressure signal: vacant length has
// dropped to at most 2 processing chunks worth of device-format bytes.
func (b *Buffer) BufferReachingLimit() bool {
	threshold := int64(2 * ProcessingChunkFrames * b.bytesPerFr)
	return b.ring.Vacant() <= threshold
}
