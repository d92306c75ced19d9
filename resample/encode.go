package resample

import (
	"encoding/binary"
	"math"
)

func encodeF32(samples []float32) []byte {
	out := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(s))
	}
	return out
}

func encodeS16(samples []float32) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		out[2*i] = byte(uint16(clampS16(s)))
		out[2*i+1] = byte(uint16(clampS16(s)) >> 8)
	}
	return out
}

func encodeS32(samples []float32) []byte {
	out := make([]byte, 4*len(samples))
	for i, s := range samples {
		v := int32(clampF64(float64(s)) * math.MaxInt32)
		binary.LittleEndian.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

func clampS16(s float32) int16 {
	v := clampF64(float64(s)) * math.MaxInt16
	if v > math.MaxInt16 {
		v = math.MaxInt16
	}
	if v < math.MinInt16 {
		v = math.MinInt16
	}
	return int16(v)
}

func clampF64(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
