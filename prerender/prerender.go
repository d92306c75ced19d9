// Package prerender renders an entire timeline's audio once into a
// contiguous device-format buffer with an atomic read cursor, for the
// export path and for "ready" live playback once pre-decode completes.
package prerender

import (
	"sync/atomic"

	"github.com/capcore/capcore/audiorender"
	"github.com/capcore/capcore/project"
	"github.com/capcore/capcore/resample"
)

// ChunkFrames is the mix-rate frame chunk size the renderer is driven in,
// per §4.6.
const ChunkFrames = 4096

type deviceResampler interface {
	QueueAndProcess(frame []float32) []byte
	Flush() []byte
}

// Buffer is the PrerenderedBuffer of §4.6: audio for the whole timeline
// rendered once, with an atomic read cursor so the consumer and producer
// (pre-decode) agree on publication ordering (§5).
type Buffer struct {
	data        []byte
	readPos     atomic.Int64 // bytes, release/acquire
	deviceRate  int
	deviceChans int
	sampleBytes int
	hash        project.TimelineHash
}

// Render populates a Buffer for the full duration of cfg's timeline at the
// given device config, bypassing the resampler when device and mix
// formats already match (§4.6, §11).
func Render(renderer *audiorender.Renderer, cfg *project.Configuration, device resample.DeviceConfig, durationSecs float64) *Buffer {
	var rs deviceResampler
	if device.MatchesMix() {
		rs = resample.NewIdentity()
	} else {
		var err error
		rs, err = resample.New(device)
		if err != nil {
			// Construction failure here is a session-fatal concern for the
			// caller; Render has no error return per §4.6's described
			// contract, so produce an empty (silent) buffer and let the
			// caller's own resampler probe (performed before calling
			// Render) be the actual gate.
			return &Buffer{
				deviceRate:  device.Rate,
				deviceChans: device.Channels,
				sampleBytes: device.Format.BytesPerSample(),
				hash:        project.Hash(cfg.Timeline, cfg.Clips, cfg.Audio),
			}
		}
	}

	sampleBytes := device.Format.BytesPerSample()
	bytesPerFrame := device.Channels * sampleBytes
	totalSourceSamples := int64(durationSecs * audiorender.MixRate)

	buf := &Buffer{
		deviceRate:  device.Rate,
		deviceChans: device.Channels,
		sampleBytes: sampleBytes,
		hash:        project.Hash(cfg.Timeline, cfg.Clips, cfg.Audio),
	}

	renderer.SetPlayhead(0, cfg)

	var rendered int64
	for rendered < totalSourceSamples {
		n := ChunkFrames
		if remaining := totalSourceSamples - rendered; int64(n) > remaining {
			n = int(remaining)
		}
		actual, samples, ok := renderer.Render(n, cfg)
		if !ok {
			outputChunkSamples := int(float64(n) * float64(device.Rate) / float64(audiorender.MixRate))
			buf.data = append(buf.data, make([]byte, outputChunkSamples*bytesPerFrame)...)
			rendered += int64(n)
			continue
		}
		chunk := rs.QueueAndProcess(samples)
		buf.data = append(buf.data, chunk...)
		rendered += int64(actual)
	}

	if tail := rs.Flush(); len(tail) > 0 {
		buf.data = append(buf.data, tail...)
	}

	return buf
}

// Hash returns the TimelineHash this buffer was rendered against, for
// invalidation comparisons.
func (b *Buffer) Hash() project.TimelineHash { return b.hash }

// Len returns the buffer's total length in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// SetPlayhead stores min(floor(t*deviceRate)*channels*sampleBytes, len) as
// the read position, release-ordered so a subsequent Fill observes it.
func (b *Buffer) SetPlayhead(t float64) {
	bytesPerFrame := b.deviceChans * b.sampleBytes
	pos := int64(t*float64(b.deviceRate)) * int64(bytesPerFrame)
	if pos > int64(len(b.data)) {
		pos = int64(len(b.data))
	}
	if pos < 0 {
		pos = 0
	}
	b.readPos.Store(pos)
}

// Fill copies from the read position forward into out, zero-filling the
// tail once the buffer is exhausted, and advances the read position by
// len(out) (clamped to the buffer's length).
func (b *Buffer) Fill(out []byte) {
	pos := b.readPos.Load()
	n := copy(out, b.data[min64(pos, int64(len(b.data))):])
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
	next := pos + int64(len(out))
	if next > int64(len(b.data)) {
		next = int64(len(b.data))
	}
	b.readPos.Store(next)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
