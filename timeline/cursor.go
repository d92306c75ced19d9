// Package timeline maps an edited-timeline playhead onto clip-local source
// time and detects when continuous playback has drifted across a trim or
// split point.
package timeline

import (
	"math"

	"github.com/capcore/capcore/project"
)

// Resolved is the result of locating edited-time t within a segment.
type Resolved struct {
	SegmentTime float64
	Segment     project.TimelineSegment
	Found       bool
}

// At returns the segment containing edited-time t and the clip-local time
// within it, or Found=false if t is past the end of the timeline.
//
// Tie-break: seg.Start belongs to the segment; seg.End does not.
func At(segments []project.TimelineSegment, t float64) Resolved {
	for _, seg := range segments {
		if t >= seg.Start && t < seg.End {
			segmentTime := (t-seg.Start)*seg.Timescale + 0 // clipOffsetIntoSource is always 0 canonically
			return Resolved{SegmentTime: segmentTime, Segment: seg, Found: true}
		}
	}
	return Resolved{}
}

// Cursor tracks (clip index, clip-local sample count, timescale) plus the
// monotonic elapsed-sample counter for one continuous play session.
type Cursor struct {
	ClipIndex      uint32
	Samples        int64
	Timescale      float64
	ElapsedSamples int64
}

// SetPlayhead resolves edited-time t against segments at the given mix
// rate and repositions the cursor there.
func SetPlayhead(segments []project.TimelineSegment, t float64, rate int) (Cursor, bool) {
	r := At(segments, t)
	if !r.Found {
		return Cursor{}, false
	}
	return Cursor{
		ClipIndex:      r.Segment.ClipIndex,
		Samples:        int64(math.Floor(r.SegmentTime * float64(rate))),
		Timescale:      r.Segment.Timescale,
		ElapsedSamples: int64(math.Floor(t * float64(rate))),
	}, true
}

// DriftThreshold returns SAMPLE_RATE/30: one 30fps video-frame worth of
// samples, the tolerance before a cursor snap is forced.
func DriftThreshold(rate int) int64 {
	return int64(rate) / 30
}

// CheckDrift recomputes the expected cursor from the projected edited time
// (elapsedSamples/rate) and compares it against cur. It returns the
// expected cursor and whether a snap is required: either the clip index
// differs, or the absolute sample delta exceeds DriftThreshold(rate) — a
// sign a trim or split was crossed since the last render.
func CheckDrift(segments []project.TimelineSegment, cur Cursor, rate int) (expected Cursor, snap bool) {
	projectedT := float64(cur.ElapsedSamples) / float64(rate)
	expected, ok := SetPlayhead(segments, projectedT, rate)
	if !ok {
		// Past the end of the timeline: nothing to snap to; let the caller
		// handle end-of-timeline on its own terms.
		return cur, false
	}
	if expected.ClipIndex != cur.ClipIndex {
		return expected, true
	}
	delta := expected.Samples - cur.Samples
	if delta < 0 {
		delta = -delta
	}
	if delta > DriftThreshold(rate) {
		return expected, true
	}
	return expected, false
}
