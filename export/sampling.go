package export

// AudioSliceFor returns the [start, n) sample-accounting window for video
// frame number f at fps F against sample rate sr, per §4.9's discrete
// accounting rule. Summed over F consecutive frames this always yields
// exactly sr samples, and over k*F frames exactly k*sr, regardless of
// whether sr mod F == 0.
func AudioSliceFor(f, fps, sr int) (start, n int64) {
	start = int64(f) * int64(sr) / int64(fps)
	end := int64(f+1) * int64(sr) / int64(fps)
	return start, end - start
}
