package audiorender

import (
	"math"

	"github.com/capcore/capcore/audiomix"
	"github.com/capcore/capcore/project"
	"github.com/capcore/capcore/timeline"
)

// MixRate is the fixed rate (48 kHz) shared between AudioRenderer and
// AudioResampler. See the glossary entry "Mix rate".
const MixRate = 48000

// Renderer drives TimelineCursor + AudioMixer to produce N mix-rate
// samples starting at the current playhead.
type Renderer struct {
	clips  []ClipTracks // indexed by clip_index
	cursor timeline.Cursor
}

// NewRenderer constructs a Renderer over the given per-clip track set.
func NewRenderer(clips []ClipTracks) *Renderer {
	return &Renderer{clips: clips}
}

// SetPlayhead resolves edited-time t against the project's timeline and
// repositions the cursor there (§4.3's set_playhead).
func (r *Renderer) SetPlayhead(t float64, cfg *project.Configuration) bool {
	cur, ok := timeline.SetPlayhead(cfg.Timeline.Segments, t, MixRate)
	if !ok {
		return false
	}
	r.cursor = cur
	return true
}

// Render produces up to n mix-rate stereo frames starting at the current
// playhead, advancing the cursor by the number of frames actually
// produced. ok=false means either the segment is muted by timescale
// (silent fast-forward, §9) or the clip ran out of material — the caller
// still must treat the advance as having happened.
func (r *Renderer) Render(n int, cfg *project.Configuration) (actual int, out []float32, ok bool) {
	expected, snap := timeline.CheckDrift(cfg.Timeline.Segments, r.cursor, MixRate)
	if snap {
		r.cursor = expected
	}

	if r.cursor.Timescale != 1.0 {
		r.advance(int64(n))
		return 0, nil, false
	}

	if int(r.cursor.ClipIndex) >= len(r.clips) {
		r.advance(int64(n))
		return 0, nil, false
	}
	clip := r.clips[r.cursor.ClipIndex]
	co := cfg.ClipOffsetsFor(r.cursor.ClipIndex)

	tracks := r.buildTracks(clip, co, cfg.Audio)
	if len(tracks) == 0 {
		r.advance(int64(n))
		return 0, nil, false
	}

	maxSamples := int64(0)
	for _, tr := range tracks {
		end := tr.OffsetSamples + int64(len(tr.Samples)/2)
		if end > maxSamples {
			maxSamples = end
		}
	}
	if r.cursor.Samples >= maxSamples {
		r.advance(int64(n))
		return 0, nil, false
	}

	buf := make([]float32, 2*n)
	produced := audiomix.Mix(tracks, r.cursor.Samples, n, buf)
	r.advance(int64(produced))
	if produced == 0 {
		return 0, nil, false
	}
	return produced, buf[:2*produced], true
}

func (r *Renderer) advance(n int64) {
	r.cursor.Samples += n
	r.cursor.ElapsedSamples += n
}

func (r *Renderer) buildTracks(clip ClipTracks, co project.ClipOffsets, audio project.AudioConfiguration) []audiomix.Track {
	var tracks []audiomix.Track
	for _, rt := range clip.roles() {
		gain := gainDB(rt.role, audio)
		offsetSec := offsetSecondsFor(rt.role, co)
		tracks = append(tracks, audiomix.Track{
			Samples:       rt.source.Samples(),
			GainDB:        gain,
			StereoMode:    stereoModeFor(rt.role, audio),
			OffsetSamples: int64(math.Round(float64(offsetSec) * float64(MixRate))),
			Muted:         audio.Mute,
		})
	}
	return tracks
}
