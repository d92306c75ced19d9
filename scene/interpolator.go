// Package scene converts discrete scene-mode change points into per-frame
// opacity/scale/blur/zoom values with easing across the transition window
// between modes.
package scene

import "github.com/capcore/capcore/project"

// TransitionDuration (T) and SmallGapThreshold (G_min) per §4.7.
const (
	TransitionDuration   = 0.3
	SmallGapThreshold    = 0.5
	directTransitionGap  = 0.01
	regularCameraFadeMul = 1.5
)

// Result is the interpolated tuple SceneInterpolator.At produces for one
// query time.
type Result struct {
	CameraOpacity        float64
	ScreenOpacity        float64
	CameraScale          float64
	CameraOnlyZoom       float64
	CameraOnlyBlur       float64
	ScreenBlur           float64
	RegularCameraOpacity float64
	IsSplitScreen        bool
	IsTransitioningIn    bool
	IsTransitioningOut   bool
	SplitCameraXRatio    float64
	SplitDisplayXRatio   float64
	SceneMode            project.SceneMode
}

type baseValues struct {
	camOp, scrOp, camScale float64
}

func baseFor(mode project.SceneMode) baseValues {
	switch mode {
	case project.ModeHideCamera:
		return baseValues{camOp: 0, scrOp: 1, camScale: 1}
	default: // Default, CameraOnly, SplitLeft, SplitRight all share (1,1,1)
		return baseValues{camOp: 1, scrOp: 1, camScale: 1}
	}
}

// splitCameraAnchor and splitDisplayAnchor place the camera and the screen
// on opposite halves of the split layout: when the camera sits on the left
// (SplitScreenLeft), the display sits on the right, and vice versa.
func splitCameraAnchor(mode project.SceneMode) float64 {
	switch mode {
	case project.ModeSplitScreenLeft:
		return 0.0
	case project.ModeSplitScreenRight:
		return 0.5
	default:
		return 0.25
	}
}

func splitDisplayAnchor(mode project.SceneMode) float64 {
	switch mode {
	case project.ModeSplitScreenLeft:
		return 0.5
	case project.ModeSplitScreenRight:
		return 0.0
	default:
		return 0.25
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// At evaluates the interpolated scene state at time t against a sorted,
// non-overlapping set of SceneSegments.
func At(segments []project.SceneSegment, t float64) Result {
	seg, prev, next := locate(segments, t)

	from, to, rawProgress, transitioning, transIn, transOut := zone(seg, prev, next, t)

	progress := 1.0
	if transitioning {
		progress = Ease(clamp01(rawProgress))
	}

	fb := baseFor(from)
	tb := baseFor(to)

	camOp := lerp(fb.camOp, tb.camOp, progress)
	scrOp := lerp(fb.scrOp, tb.scrOp, progress)
	camScale := lerp(fb.camScale, tb.camScale, progress)

	zoom, blur := cameraOnlyZoomBlur(from, to, progress)
	regularCam := regularCameraOpacity(from, to, progress)

	activeMode := from
	if progress > 0.5 {
		activeMode = to
	}

	cameraRatio := lerp(splitCameraAnchor(from), splitCameraAnchor(to), progress)
	displayRatio := lerp(splitDisplayAnchor(from), splitDisplayAnchor(to), progress)

	return Result{
		CameraOpacity:        camOp,
		ScreenOpacity:        scrOp,
		CameraScale:          camScale,
		CameraOnlyZoom:       zoom,
		CameraOnlyBlur:       blur,
		ScreenBlur:           blur,
		RegularCameraOpacity: regularCam,
		IsSplitScreen:        activeMode == project.ModeSplitScreenLeft || activeMode == project.ModeSplitScreenRight,
		IsTransitioningIn:    transIn,
		IsTransitioningOut:   transOut,
		SplitCameraXRatio:    cameraRatio,
		SplitDisplayXRatio:   displayRatio,
		SceneMode:            activeMode,
	}
}

// cameraOnlyZoomBlur implements §4.7's "camera-only zoom (1.0 -> 1.1 on
// exit, 1.1 -> 1.0 on enter)", mirroring the same curve for blur strength
// (a [0,1] radial amount) since the spec groups the two together without
// a separate formula for blur.
func cameraOnlyZoomBlur(from, to project.SceneMode, progress float64) (zoom, blur float64) {
	switch {
	case to == project.ModeCameraOnly && from != project.ModeCameraOnly:
		return lerp(1.0, 1.1, progress), lerp(0.0, 1.0, progress)
	case from == project.ModeCameraOnly && to != project.ModeCameraOnly:
		return lerp(1.1, 1.0, progress), lerp(1.0, 0.0, progress)
	default:
		return 1.0, 0.0
	}
}

// regularCameraOpacity implements the `×1.5` asymmetric fader: the regular
// (non-fullscreen) camera fades out ~1.5x faster than the camera-only view
// fades in, and symmetrically on the way back.
func regularCameraOpacity(from, to project.SceneMode, progress float64) float64 {
	switch {
	case to == project.ModeCameraOnly && from != project.ModeCameraOnly:
		v := 1 - regularCameraFadeMul*progress
		if v < 0 {
			return 0
		}
		return v
	case from == project.ModeCameraOnly && to != project.ModeCameraOnly:
		v := regularCameraFadeMul * progress
		if v > 1 {
			return 1
		}
		return v
	default:
		return 1.0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
