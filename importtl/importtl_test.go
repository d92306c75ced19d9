package importtl_test

import (
	"encoding/json"
	"testing"

	"github.com/capcore/capcore/importtl"
	"github.com/capcore/capcore/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
	"version": "1.0.0",
	"textSegments": [
		{"start": 0, "end": 5, "content": "hello"}
	],
	"sceneChanges": [
		{"time": 0, "mode": "screen"},
		{"time": 2, "mode": "camera"},
		{"time": 4, "mode": "splitScreenLeft"}
	]
}`

func TestImport_SceneChangesLowerToSegments(t *testing.T) {
	tl, warnings, err := importtl.Import([]byte(validDoc), project.Timeline{}, 10, importtl.MergeReplace)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, tl.SceneSegments, 3)

	assert.Equal(t, project.SceneSegment{Start: 0, End: 2, Mode: project.ModeDefault}, tl.SceneSegments[0])
	assert.Equal(t, project.SceneSegment{Start: 2, End: 4, Mode: project.ModeCameraOnly}, tl.SceneSegments[1])
	assert.Equal(t, project.SceneSegment{Start: 4, End: 10, Mode: project.ModeSplitScreenLeft}, tl.SceneSegments[2])

	require.Len(t, tl.TextSegments, 1)
	assert.Equal(t, "hello", tl.TextSegments[0].Content)
}

func TestImport_VersionMismatchRejectsWithNoSideEffects(t *testing.T) {
	existing := project.Timeline{TextSegments: []project.TextSegment{{Content: "kept"}}}
	doc := `{"version": "0.9.0", "textSegments": [], "sceneChanges": []}`

	tl, warnings, err := importtl.Import([]byte(doc), existing, 10, importtl.MergeReplace)
	require.Error(t, err)
	assert.Nil(t, warnings)
	assert.Equal(t, existing, tl)
}

func TestImport_OutOfRangeCoordinatesProduceExactlyTwoWarnings(t *testing.T) {
	doc := `{
		"version": "1.0.0",
		"textSegments": [
			{"start": 0, "end": 5, "content": "x", "center": {"x": 1.5, "y": -0.2}}
		],
		"sceneChanges": []
	}`

	tl, warnings, err := importtl.Import([]byte(doc), project.Timeline{}, 10, importtl.MergeReplace)
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
	require.Len(t, tl.TextSegments, 1)
	assert.Equal(t, 1.0, tl.TextSegments[0].CenterX)
	assert.Equal(t, 0.0, tl.TextSegments[0].CenterY)
}

func TestImport_ReplacePreservesSceneWhenImportHasNone(t *testing.T) {
	existing := project.Timeline{
		SceneSegments: []project.SceneSegment{{Start: 0, End: 10, Mode: project.ModeCameraOnly}},
		TextSegments:  []project.TextSegment{{Content: "old"}},
	}
	doc := `{"version": "1.0.0", "textSegments": [{"start": 0, "end": 1, "content": "new"}], "sceneChanges": []}`

	tl, _, err := importtl.Import([]byte(doc), existing, 10, importtl.MergeReplace)
	require.NoError(t, err)
	require.Len(t, tl.SceneSegments, 1)
	assert.Equal(t, project.ModeCameraOnly, tl.SceneSegments[0].Mode)
	require.Len(t, tl.TextSegments, 1)
	assert.Equal(t, "new", tl.TextSegments[0].Content)
}

func TestImport_AppendExtendsBothTracks(t *testing.T) {
	existing := project.Timeline{
		SceneSegments: []project.SceneSegment{{Start: 0, End: 2, Mode: project.ModeDefault}},
		TextSegments:  []project.TextSegment{{Content: "old"}},
	}
	tl, _, err := importtl.Import([]byte(validDoc), existing, 10, importtl.MergeAppend)
	require.NoError(t, err)
	assert.Len(t, tl.SceneSegments, 1+3)
	assert.Len(t, tl.TextSegments, 1+1)
}

func TestValidate_Idempotent(t *testing.T) {
	var doc importtl.Document
	require.NoError(t, json.Unmarshal([]byte(validDoc), &doc))

	r1, err1 := importtl.Validate(doc)
	r2, err2 := importtl.Validate(doc)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, r1, r2)
}
