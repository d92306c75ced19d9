package playback

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gordonklaus/portaudio"

	"github.com/capcore/capcore/internal/capslog"
)

// Device drives a Buffer from a real portaudio output stream. The callback
// registered with portaudio must never block, allocate, or touch anything
// outside the ring and its atomics (§5) — it calls only Ring.Read.
type Device struct {
	stream  *portaudio.Stream
	buf     *Buffer
	scratch []byte // callback byte buffer, allocated once in OpenDevice
}

// OpenDevice opens the default portaudio output stream at the Buffer's
// configured rate/channels and wires its callback to drain buf.ring
// directly (bypassing Fill's prefill logic, which must only run off the
// realtime thread).
func OpenDevice(buf *Buffer) (*Device, error) {
	d := &Device{buf: buf, scratch: make([]byte, ProcessingChunkFrames*buf.deviceChans*4)}

	stream, err := portaudio.OpenDefaultStream(
		0, buf.deviceChans, float64(buf.deviceRate), ProcessingChunkFrames,
		d.callback,
	)
	if err != nil {
		return nil, fmt.Errorf("playback: open device stream: %w", err)
	}
	d.stream = stream
	return d, nil
}

// callback is the realtime audio thread entry point: it only reads from
// the lock-free ring, never renders or allocates.
func (d *Device) callback(out []float32) {
	raw := d.scratch
	if len(raw) > len(out)*4 { // f32 device format
		raw = raw[:len(out)*4]
	}
	n := d.buf.ring.Read(raw)
	for i := n; i < len(raw); i++ {
		raw[i] = 0
	}
	frames := len(raw) / 4
	decodeF32Into(out[:frames], raw)
	for i := frames; i < len(out); i++ {
		out[i] = 0
	}
}

// Start begins device playback.
func (d *Device) Start() error {
	if err := d.stream.Start(); err != nil {
		capslog.Component("playback").Error().Err(err).Msg("device start failed")
		return err
	}
	return nil
}

// Stop halts device playback.
func (d *Device) Stop() error {
	return d.stream.Stop()
}

// Close releases the underlying stream.
func (d *Device) Close() error {
	return d.stream.Close()
}

func decodeF32Into(out []float32, raw []byte) {
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
}
