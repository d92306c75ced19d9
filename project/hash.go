package project

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// TimelineHash is a stable digest over the timeline's segments, scene/text
// overlays, and audio mixer configuration. PrerenderedBuffer consumers
// compare hashes to decide whether a cached render is still valid.
type TimelineHash uint64

// Hash computes the TimelineHash for t combined with per-clip audio
// offsets and the mixer-relevant parts of audio. It deliberately excludes
// Camera/Cursor configuration, which affect rendering but not audio or
// frame timing.
func Hash(t Timeline, clips []ClipOffsets, audio AudioConfiguration) TimelineHash {
	d := xxhash.New()
	var buf [8]byte

	writeF64 := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		d.Write(buf[:])
	}
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		d.Write(buf[:])
	}
	writeU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		d.Write(b[:])
	}

	writeU64(uint64(len(t.Segments)))
	for _, s := range t.Segments {
		writeU32(s.ClipIndex)
		writeF64(s.Start)
		writeF64(s.End)
		writeF64(s.Timescale)
	}

	writeU64(uint64(len(t.SceneSegments)))
	for _, s := range t.SceneSegments {
		writeF64(s.Start)
		writeF64(s.End)
		writeU32(uint32(s.Mode))
	}

	writeU64(uint64(len(t.TextSegments)))
	for _, s := range t.TextSegments {
		writeF64(s.Start)
		writeF64(s.End)
		d.Write([]byte(s.Content))
		for _, kf := range s.Keyframes.Position {
			writeF64(kf.Time)
			writeF64(kf.X)
			writeF64(kf.Y)
		}
		for _, kf := range s.Keyframes.Opacity {
			writeF64(kf.Time)
			writeF64(kf.Value)
		}
	}

	writeU64(uint64(len(clips)))
	for _, c := range clips {
		writeU32(c.ClipIndex)
		writeF64(float64(c.MicOffsetSeconds))
		writeF64(float64(c.CameraMicOffsetSec))
		writeF64(float64(c.SystemAudioOffsSec))
	}

	b := boolByte(audio.Mute)
	d.Write([]byte{b})
	writeF64(float64(audio.MicVolumeDB))
	writeF64(float64(audio.CameraMicVolumeDB))
	writeF64(float64(audio.SystemAudioVolumeDB))
	writeU32(uint32(audio.MicStereoMode))
	writeU32(uint32(audio.SystemStereoMode))

	return TimelineHash(d.Sum64())
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
