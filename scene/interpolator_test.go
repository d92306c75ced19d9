package scene_test

import (
	"testing"

	"github.com/capcore/capcore/project"
	"github.com/capcore/capcore/scene"
	"github.com/stretchr/testify/assert"
)

func TestAt_StableWithinSegment(t *testing.T) {
	segs := []project.SceneSegment{{Start: 0, End: 5, Mode: project.ModeCameraOnly}}
	r := scene.At(segs, 2.0)
	assert.Equal(t, project.ModeCameraOnly, r.SceneMode)
	assert.Equal(t, 1.0, r.CameraOpacity)
	assert.False(t, r.IsTransitioningOut)
}

func TestAt_SplitLeftToRightRatioAtHalfProgress(t *testing.T) {
	segs := []project.SceneSegment{
		{Start: 0, End: 1, Mode: project.ModeSplitScreenLeft},
		{Start: 1, End: 2, Mode: project.ModeSplitScreenRight},
	}
	r := scene.At(segs, 0.85) // transOutStart=0.7, (0.85-0.7)/0.3=0.5 raw progress
	assert.InDelta(t, 0.25, r.SplitCameraXRatio, 1e-6)
	assert.InDelta(t, 0.25, r.SplitDisplayXRatio, 1e-6)
	assert.True(t, r.IsTransitioningOut)
}

func TestAt_SplitScreenAnchorsPlaceCameraAndDisplayOnOppositeHalves(t *testing.T) {
	leftSegs := []project.SceneSegment{{Start: 0, End: 5, Mode: project.ModeSplitScreenLeft}}
	left := scene.At(leftSegs, 2.0)
	assert.InDelta(t, 0.0, left.SplitCameraXRatio, 1e-6)
	assert.InDelta(t, 0.5, left.SplitDisplayXRatio, 1e-6)

	rightSegs := []project.SceneSegment{{Start: 0, End: 5, Mode: project.ModeSplitScreenRight}}
	right := scene.At(rightSegs, 2.0)
	assert.InDelta(t, 0.5, right.SplitCameraXRatio, 1e-6)
	assert.InDelta(t, 0.0, right.SplitDisplayXRatio, 1e-6)
}

func TestAt_SplitLeftToRightRatiosAreComplementaryAwayFromHalfProgress(t *testing.T) {
	segs := []project.SceneSegment{
		{Start: 0, End: 1, Mode: project.ModeSplitScreenLeft},
		{Start: 1, End: 2, Mode: project.ModeSplitScreenRight},
	}
	r := scene.At(segs, 0.775) // transOutStart=0.7, raw progress 0.25 != 0.5
	eased := scene.Ease(0.25)
	wantCamera := eased * 0.5      // lerp(0.0, 0.5, eased)
	wantDisplay := 0.5 - eased*0.5 // lerp(0.5, 0.0, eased)
	assert.InDelta(t, wantCamera, r.SplitCameraXRatio, 1e-6)
	assert.InDelta(t, wantDisplay, r.SplitDisplayXRatio, 1e-6)
	assert.NotEqual(t, r.SplitCameraXRatio, r.SplitDisplayXRatio)
	assert.InDelta(t, 0.5, r.SplitCameraXRatio+r.SplitDisplayXRatio, 1e-6)
}

func TestAt_SceneModeSnapsPastHalfProgress(t *testing.T) {
	segs := []project.SceneSegment{
		{Start: 0, End: 1, Mode: project.ModeSplitScreenLeft},
		{Start: 1, End: 2, Mode: project.ModeSplitScreenRight},
	}
	before := scene.At(segs, 0.84) // progress just under 0.5
	after := scene.At(segs, 0.86) // progress just over 0.5
	assert.Equal(t, project.ModeSplitScreenLeft, before.SceneMode)
	assert.Equal(t, project.ModeSplitScreenRight, after.SceneMode)
}

func TestAt_EasingEndpoints(t *testing.T) {
	segs := []project.SceneSegment{
		{Start: 0, End: 1, Mode: project.ModeHideCamera},
		{Start: 1.5, End: 2.5, Mode: project.ModeDefault}, // gap 0.5s == G_min, not suppressed (not < G_min)
	}
	atStart := scene.At(segs, 0.70000001) // just after transOutStart=0.7
	atEnd := scene.At(segs, 0.999999)     // just before seg.End=1

	assert.InDelta(t, 0.0, atStart.CameraOpacity, 1e-3, "progress~0 should equal from_mode base (HideCamera: cam_op=0)")
	assert.InDelta(t, 1.0, atEnd.CameraOpacity, 1e-3, "progress~1 should equal to_mode base (gap>0.01 => Default: cam_op=1)")
}

func TestAt_SmallGapSuppressesTransition(t *testing.T) {
	segs := []project.SceneSegment{
		{Start: 0, End: 1, Mode: project.ModeCameraOnly},
		{Start: 1.2, End: 2, Mode: project.ModeCameraOnly}, // gap 0.2s < G_min(0.5), same mode
	}
	r := scene.At(segs, 1.1) // inside the gap
	assert.Equal(t, project.ModeCameraOnly, r.SceneMode)
	assert.False(t, r.IsTransitioningIn)
	assert.False(t, r.IsTransitioningOut)
}

func TestAt_GapBecomesDefaultWhenLarge(t *testing.T) {
	segs := []project.SceneSegment{
		{Start: 0, End: 1, Mode: project.ModeCameraOnly},
		{Start: 3, End: 4, Mode: project.ModeCameraOnly}, // gap 2s, same mode but >= G_min
	}
	r := scene.At(segs, 1.5) // well inside the gap, past both transition windows
	assert.Equal(t, project.ModeDefault, r.SceneMode)
}

func TestAt_BackToBackDifferentModesTransitionDirectly(t *testing.T) {
	segs := []project.SceneSegment{
		{Start: 0, End: 1, Mode: project.ModeCameraOnly},
		{Start: 1, End: 2, Mode: project.ModeHideCamera},
	}
	r := scene.At(segs, 0.85) // inside seg1's transition-out window
	assert.InDelta(t, 0.5, r.CameraOpacity, 0.01, "direct transition toward HideCamera's cam_op=0, halfway")
}
