package audiorender

// Source is a shared, read-only handle to decoded stereo f32 samples at a
// known rate. Multiple clip tracks may reference the same Source; capcore
// never mutates one after load.
type Source interface {
	Samples() []float32 // stereo interleaved, at SampleRate()
	SampleRate() int
	SampleCount() int
}

// MemorySource is the simplest Source: a fixed, preloaded stereo buffer.
// Video/audio decoding is an out-of-scope collaborator (§1); production
// sources wrap a decoder, but tests and the prerender path can use this
// directly.
type MemorySource struct {
	samples []float32
	rate    int
}

// NewMemorySource wraps a stereo-interleaved buffer already at rate.
func NewMemorySource(samples []float32, rate int) *MemorySource {
	return &MemorySource{samples: samples, rate: rate}
}

func (m *MemorySource) Samples() []float32 { return m.samples }
func (m *MemorySource) SampleRate() int    { return m.rate }
func (m *MemorySource) SampleCount() int   { return len(m.samples) / 2 }
