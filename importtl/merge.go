package importtl

import "github.com/capcore/capcore/project"

// Merge combines a lowered import (textSegs, sceneSegs) into an existing
// timeline per §6's two merge modes.
//
// Replace overwrites text_segments unconditionally, but only overwrites
// scene_segments if the import actually produced any — an import with no
// sceneChanges leaves the existing scene composition untouched rather than
// wiping it to empty. Append extends both slices regardless.
func Merge(existing project.Timeline, textSegs []project.TextSegment, sceneSegs []project.SceneSegment, mode MergeMode) project.Timeline {
	out := existing
	switch mode {
	case MergeReplace:
		out.TextSegments = textSegs
		if len(sceneSegs) > 0 {
			out.SceneSegments = sceneSegs
		}
	case MergeAppend:
		out.TextSegments = append(append([]project.TextSegment{}, existing.TextSegments...), textSegs...)
		out.SceneSegments = append(append([]project.SceneSegment{}, existing.SceneSegments...), sceneSegs...)
	}
	return out
}
