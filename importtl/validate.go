package importtl

import (
	"fmt"
	"math"
	"strings"

	"github.com/capcore/capcore/internal/corerr"
)

// epsilonF64 matches Rust's f64::EPSILON exactly, per §9's open question:
// the spec explicitly says not to widen this without product confirmation.
const epsilonF64 = 2.220446049250313e-16

// ValidationResult carries the non-fatal warnings produced by a successful
// validation pass.
type ValidationResult struct {
	Warnings []corerr.Warning
}

// Validate checks doc against §6's validation taxonomy. A non-nil error
// means the whole import is rejected with no side effects; warnings are
// returned only alongside a nil error.
func Validate(doc Document) (ValidationResult, error) {
	if doc.Version != SupportedVersion {
		return ValidationResult{}, fmt.Errorf("%w: unsupported version %q", corerr.ErrValidation, doc.Version)
	}

	var warnings []corerr.Warning

	for i, seg := range doc.TextSegments {
		if seg.End <= seg.Start {
			return ValidationResult{}, fmt.Errorf("%w: textSegments[%d] has end <= start", corerr.ErrValidation, i)
		}
		if strings.TrimSpace(seg.Content) == "" {
			return ValidationResult{}, fmt.Errorf("%w: textSegments[%d] has empty content", corerr.ErrValidation, i)
		}
		if seg.Center != nil {
			if seg.Center.X < 0 || seg.Center.X > 1 {
				warnings = append(warnings, corerr.Warning{Field: fmt.Sprintf("textSegments[%d].center.x", i), Message: "out of [0,1], will be clamped"})
			}
			if seg.Center.Y < 0 || seg.Center.Y > 1 {
				warnings = append(warnings, corerr.Warning{Field: fmt.Sprintf("textSegments[%d].center.y", i), Message: "out of [0,1], will be clamped"})
			}
		}
		if seg.Keyframes != nil {
			for j, kf := range seg.Keyframes.Position {
				if kf.Time < 0 {
					return ValidationResult{}, fmt.Errorf("%w: textSegments[%d].keyframes.position[%d] has negative time", corerr.ErrValidation, i, j)
				}
				if kf.X < 0 || kf.X > 1 {
					warnings = append(warnings, corerr.Warning{Field: fmt.Sprintf("textSegments[%d].keyframes.position[%d].x", i, j), Message: "out of [0,1], will be clamped"})
				}
				if kf.Y < 0 || kf.Y > 1 {
					warnings = append(warnings, corerr.Warning{Field: fmt.Sprintf("textSegments[%d].keyframes.position[%d].y", i, j), Message: "out of [0,1], will be clamped"})
				}
			}
			for j, kf := range seg.Keyframes.Opacity {
				if kf.Time < 0 {
					return ValidationResult{}, fmt.Errorf("%w: textSegments[%d].keyframes.opacity[%d] has negative time", corerr.ErrValidation, i, j)
				}
			}
		}
	}

	if err := validateSceneChanges(doc.SceneChanges); err != nil {
		return ValidationResult{}, err
	}

	return ValidationResult{Warnings: warnings}, nil
}

func validateSceneChanges(changes []SceneChange) error {
	for i := 1; i < len(changes); i++ {
		dt := changes[i].Time - changes[i-1].Time
		if math.Abs(dt) < epsilonF64 {
			return fmt.Errorf("%w: sceneChanges[%d] and [%d] have duplicate times", corerr.ErrValidation, i-1, i)
		}
		if dt < 0 {
			return fmt.Errorf("%w: sceneChanges is not sorted at index %d", corerr.ErrValidation, i)
		}
	}
	return nil
}
