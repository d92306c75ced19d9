// Package resample converts the fixed 48 kHz stereo f32 mix format into a
// device's sample rate/channel count/sample format, via a polyphase
// resampler configured once per session.
package resample

import (
	"fmt"

	audioresampler "github.com/tphakala/go-audio-resampler"

	"github.com/capcore/capcore/internal/corerr"
)

// FilterSize and Cutoff are the fixed polyphase resampler parameters
// mandated by §4.4; they are never tuned per-device.
const (
	FilterSize = 32
	Cutoff     = 0.97

	// MaxOutputChannels clamps device channel counts per §4.4.
	MaxOutputChannels = 8

	mixRate     = 48000
	mixChannels = 2
)

// SampleFormat is the device PCM layout the resampler emits bytes for.
type SampleFormat int

const (
	FormatF32 SampleFormat = iota
	FormatS16
	FormatS32
)

// BytesPerSample returns the byte width of one sample in this format.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case FormatS16:
		return 2
	case FormatS32, FormatF32:
		return 4
	default:
		return 4
	}
}

// DeviceConfig describes the output format AudioResampler must adapt to.
type DeviceConfig struct {
	Rate     int
	Channels int
	Format   SampleFormat
}

// MatchesMix reports whether cfg is byte-identical to the 48kHz stereo f32
// mix format, the condition under which callers should bypass the
// resampler entirely (§4.6, §11).
func (cfg DeviceConfig) MatchesMix() bool {
	return cfg.Rate == mixRate && cfg.Channels == mixChannels && cfg.Format == FormatF32
}

// Resampler wraps a polyphase resampler instance configured once for a
// single DeviceConfig.
type Resampler struct {
	cfg    DeviceConfig
	engine *audioresampler.Resampler
}

// New constructs a Resampler for the given device config. Channel counts
// above MaxOutputChannels are clamped to it. It returns
// corerr.ErrResamplerInit if the rate or channel count is not positive, or
// the underlying engine rejects the config.
func New(cfg DeviceConfig) (*Resampler, error) {
	if cfg.Channels > MaxOutputChannels {
		cfg.Channels = MaxOutputChannels
	}
	if cfg.Rate <= 0 || cfg.Channels <= 0 {
		return nil, fmt.Errorf("%w: invalid device config %+v", corerr.ErrResamplerInit, cfg)
	}

	engine, err := audioresampler.New(audioresampler.Config{
		InputRate:    mixRate,
		OutputRate:   cfg.Rate,
		Channels:     cfg.Channels,
		FilterLength: FilterSize,
		Cutoff:       Cutoff,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", corerr.ErrResamplerInit, err)
	}

	return &Resampler{cfg: cfg, engine: engine}, nil
}

// QueueAndProcess resamples one stereo-interleaved mix-rate frame buffer
// and returns device-format bytes ready to feed the playback ring or the
// encoder's audio channel.
func (r *Resampler) QueueAndProcess(frame []float32) []byte {
	resampled := r.engine.Process(frame)
	return encode(resampled, r.cfg)
}

// Flush drains any samples buffered inside the polyphase filter, returning
// nil once empty.
func (r *Resampler) Flush() []byte {
	tail := r.engine.Flush()
	if len(tail) == 0 {
		return nil
	}
	return encode(tail, r.cfg)
}

func encode(samples []float32, cfg DeviceConfig) []byte {
	switch cfg.Format {
	case FormatF32:
		return encodeF32(samples)
	case FormatS16:
		return encodeS16(samples)
	case FormatS32:
		return encodeS32(samples)
	default:
		return encodeF32(samples)
	}
}
