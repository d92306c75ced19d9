package importtl

import (
	"encoding/json"
	"fmt"

	"github.com/capcore/capcore/internal/corerr"
	"github.com/capcore/capcore/project"
)

// Import parses, validates, and lowers raw Timeline JSON, then merges it
// into existing per mode. A non-nil error means existing is returned
// unchanged alongside it.
func Import(raw []byte, existing project.Timeline, videoDuration float64, mode MergeMode) (project.Timeline, []corerr.Warning, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return existing, nil, fmt.Errorf("%w: %v", corerr.ErrValidation, err)
	}

	result, err := Validate(doc)
	if err != nil {
		return existing, nil, err
	}

	textSegs := LowerTextSegments(doc.TextSegments)
	sceneSegs := LowerSceneChanges(doc.SceneChanges, videoDuration)

	return Merge(existing, textSegs, sceneSegs, mode), result.Warnings, nil
}
