package importtl

import (
	"strconv"

	"github.com/capcore/capcore/project"
	"github.com/capcore/capcore/text"
)

// sceneModeFor maps a JSON scene-change mode string to project.SceneMode,
// per §6. Unrecognized strings fall back to ModeDefault rather than
// failing the import — the validation pass (§6, §7) does not enumerate
// mode-string validation as a fatal condition.
func sceneModeFor(mode string) project.SceneMode {
	switch mode {
	case "camera":
		return project.ModeCameraOnly
	case "splitScreenLeft":
		return project.ModeSplitScreenLeft
	case "splitScreenRight":
		return project.ModeSplitScreenRight
	case "screen":
		return project.ModeDefault
	default:
		return project.ModeDefault
	}
}

// LowerSceneChanges converts sorted, validated scene-change points into
// SceneSegments: consecutive changes form [changes[i].time,
// changes[i+1].time), the last extends to videoDuration, and zero-length
// segments are discarded.
func LowerSceneChanges(changes []SceneChange, videoDuration float64) []project.SceneSegment {
	var out []project.SceneSegment
	for i, ch := range changes {
		end := videoDuration
		if i+1 < len(changes) {
			end = changes[i+1].Time
		}
		if end <= ch.Time {
			continue
		}
		out = append(out, project.SceneSegment{Start: ch.Time, End: end, Mode: sceneModeFor(ch.Mode)})
	}
	return out
}

// LowerTextSegments converts validated JSON text segments into
// project.TextSegment, clamping out-of-range coordinates (the warnings for
// which were already produced by Validate).
func LowerTextSegments(in []TextSegment) []project.TextSegment {
	out := make([]project.TextSegment, 0, len(in))
	for _, seg := range in {
		ts := project.TextSegment{
			Start:   seg.Start,
			End:     seg.End,
			Enabled: true,
			Content: seg.Content,
			CenterX: 0.5,
			CenterY: 0.5,
			SizeX:   1.0,
			SizeY:   0.2,
			Color:   [4]float64{1, 1, 1, 1},
		}
		if seg.Center != nil {
			ts.CenterX = clamp01(seg.Center.X)
			ts.CenterY = clamp01(seg.Center.Y)
		}
		if seg.FontSize != nil {
			ts.FontSize = *seg.FontSize
		} else {
			ts.FontSize = 48
		}
		if seg.FontFamily != nil {
			ts.FontFamily = *seg.FontFamily
		}
		if seg.FontWeight != nil {
			if w, err := strconv.ParseFloat(*seg.FontWeight, 32); err == nil {
				ts.FontWeight = float32(w)
			} else {
				ts.FontWeight = 400
			}
		} else {
			ts.FontWeight = 400
		}
		if seg.FontColor != nil {
			ts.Color = text.ParseColor(*seg.FontColor)
		}
		if seg.FadeDuration != nil {
			ts.FadeDuration = *seg.FadeDuration
		}
		if seg.Keyframes != nil {
			for _, kf := range seg.Keyframes.Position {
				ts.Keyframes.Position = append(ts.Keyframes.Position, project.PositionKeyframe{
					Time: kf.Time, X: clamp01(kf.X), Y: clamp01(kf.Y),
				})
			}
			for _, kf := range seg.Keyframes.Opacity {
				ts.Keyframes.Opacity = append(ts.Keyframes.Opacity, project.OpacityKeyframe{
					Time: kf.Time, Value: clamp01(kf.Value),
				})
			}
		}
		out = append(out, ts)
	}
	return out
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
