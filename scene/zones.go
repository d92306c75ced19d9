package scene

import "github.com/capcore/capcore/project"

// locate finds the segment containing t (if any), the last segment ending
// at or before t, and the first segment starting after t. Segments must be
// sorted by Start and non-overlapping.
func locate(segments []project.SceneSegment, t float64) (seg, prev, next *project.SceneSegment) {
	for i := range segments {
		s := &segments[i]
		if t >= s.Start && t < s.End {
			seg = s
		}
		if s.End <= t {
			prev = s
		}
		if s.Start > t && next == nil {
			next = s
		}
	}
	return
}

// betweenMode resolves the mode that occupies the gap between prev and
// next, and whether the small-gap rule suppresses any transition entirely
// (prev.Mode == next.Mode and the gap is under SmallGapThreshold).
func betweenMode(prev, next *project.SceneSegment) (mode project.SceneMode, skip bool) {
	if prev == nil || next == nil {
		return project.ModeDefault, false
	}
	gap := next.Start - prev.End
	if gap < 0 {
		gap = 0
	}
	if prev.Mode == next.Mode && gap < SmallGapThreshold {
		return prev.Mode, true
	}
	if gap > directTransitionGap {
		return project.ModeDefault, false
	}
	return next.Mode, false
}

// zone classifies query time t into (from, to, rawProgress, transitioning,
// transitioningIn, transitioningOut) per §4.7's three-window state
// machine: stable-inside-segment, transition-out, transition-in, or
// stable-in-gap.
func zone(seg, prev, next *project.SceneSegment, t float64) (from, to project.SceneMode, rawProgress float64, transitioning, transIn, transOut bool) {
	if seg != nil {
		transOutStart := seg.End - TransitionDuration
		if t < transOutStart {
			return seg.Mode, seg.Mode, 1, false, false, false
		}
		between, skip := betweenMode(seg, next)
		if skip {
			return seg.Mode, seg.Mode, 1, false, false, false
		}
		progress := (t - transOutStart) / TransitionDuration
		return seg.Mode, between, progress, true, false, true
	}

	if prev == nil && next == nil {
		return project.ModeDefault, project.ModeDefault, 1, false, false, false
	}
	if prev == nil {
		if next != nil && t >= next.Start-TransitionDuration {
			progress := (t - (next.Start - TransitionDuration)) / TransitionDuration
			return project.ModeDefault, next.Mode, progress, true, true, false
		}
		return project.ModeDefault, project.ModeDefault, 1, false, false, false
	}
	if next == nil {
		return project.ModeDefault, project.ModeDefault, 1, false, false, false
	}

	between, skip := betweenMode(prev, next)
	if skip {
		return prev.Mode, prev.Mode, 1, false, false, false
	}
	transInStart := next.Start - TransitionDuration
	if t >= transInStart {
		progress := (t - transInStart) / TransitionDuration
		return between, next.Mode, progress, true, true, false
	}
	return between, between, 1, false, false, false
}
