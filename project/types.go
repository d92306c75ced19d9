// Package project holds the persisted data model a timeline import produces
// and a playback/export session consumes: segments, scene/text overlays,
// clip offsets, and the audio mixer configuration.
package project

// SceneMode is the visual composition mode active over a SceneSegment.
type SceneMode int

const (
	ModeDefault SceneMode = iota
	ModeCameraOnly
	ModeHideCamera
	ModeSplitScreenLeft
	ModeSplitScreenRight
)

func (m SceneMode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeCameraOnly:
		return "cameraOnly"
	case ModeHideCamera:
		return "hideCamera"
	case ModeSplitScreenLeft:
		return "splitScreenLeft"
	case ModeSplitScreenRight:
		return "splitScreenRight"
	default:
		return "unknown"
	}
}

// TimelineSegment maps [Start, End) of the edited timeline onto ClipIndex's
// source material, played at Timescale. Segments are totally ordered with
// no gaps or overlaps.
type TimelineSegment struct {
	ClipIndex uint32
	Start     float64
	End       float64
	Timescale float64
}

// Duration returns the edited-timeline span of the segment.
func (s TimelineSegment) Duration() float64 { return s.End - s.Start }

// ClipOffsets locates each audio track's start relative to the owning
// clip's video start. A positive offset means the track starts later than
// the video.
type ClipOffsets struct {
	ClipIndex          uint32
	MicOffsetSeconds   float32
	CameraMicOffsetSec float32
	SystemAudioOffsSec float32
}

// SceneSegment is a contiguous span with a single composition mode. Sorted
// by Start, non-overlapping; gaps imply ModeDefault there.
type SceneSegment struct {
	Start float64
	End   float64
	Mode  SceneMode
}

// PositionKeyframe is a text segment's center-position keyframe, time
// relative to the owning segment's start.
type PositionKeyframe struct {
	Time float64
	X    float64
	Y    float64
}

// OpacityKeyframe is a text segment's opacity keyframe, time relative to
// the owning segment's start, value clamped to [0,1] on ingest.
type OpacityKeyframe struct {
	Time  float64
	Value float64
}

// TextKeyframes bundles the two keyframe tracks a TextSegment may carry.
type TextKeyframes struct {
	Position []PositionKeyframe
	Opacity  []OpacityKeyframe
}

// TextSegment is a timed text overlay with keyframed position/opacity and
// a fixed center/size/color fallback.
type TextSegment struct {
	Start        float64
	End          float64
	Enabled      bool
	Content      string
	CenterX      float64
	CenterY      float64
	SizeX        float64
	SizeY        float64
	FontSize     float32
	FontFamily   string
	FontWeight   float32
	Color        [4]float64 // linear RGBA in [0,1]
	FadeDuration float64
	Keyframes    TextKeyframes
}

// StereoMode selects how a mono or stereo source track is routed into the
// stereo mix.
type StereoMode int

const (
	StereoModeStereo StereoMode = iota
	StereoModeMonoL
	StereoModeMonoR
	StereoModeMonoMix
)

// TrackRole tags a mixer track's provenance so gain/mute/offset lookups are
// a field read rather than a closure call. See AudioConfiguration.
type TrackRole int

const (
	TrackRoleMic TrackRole = iota
	TrackRoleCameraMic
	TrackRoleSystemAudio
)

// AudioConfiguration carries the per-role gain/mute settings a mixer track
// visitor reads when projecting a clip's tracks into MixerTracks.
type AudioConfiguration struct {
	Mute                bool
	MicVolumeDB         float32
	CameraMicVolumeDB   float32
	SystemAudioVolumeDB float32
	MicStereoMode       StereoMode
	SystemStereoMode    StereoMode
}

// CameraConfiguration and CursorConfiguration are out-of-scope collaborator
// settings; capcore only round-trips them through the persisted document.
type CameraConfiguration struct {
	Shape    string
	Mirrored bool
}

type CursorConfiguration struct {
	Hide       bool
	SizeFactor float64
}

// Timeline is the ordered collection of segments a playback/export session
// drives from.
type Timeline struct {
	Segments      []TimelineSegment
	SceneSegments []SceneSegment
	TextSegments  []TextSegment
}

// Configuration is the full persisted project document (see SPEC_FULL §10.6).
type Configuration struct {
	Timeline Timeline
	Clips    []ClipOffsets
	Audio    AudioConfiguration
	Camera   CameraConfiguration
	Cursor   CursorConfiguration
}

// ClipOffsetsFor returns the ClipOffsets for clipIndex, or the zero value if
// none were recorded (all tracks start in sync with the video).
func (c *Configuration) ClipOffsetsFor(clipIndex uint32) ClipOffsets {
	for _, co := range c.Clips {
		if co.ClipIndex == clipIndex {
			return co
		}
	}
	return ClipOffsets{ClipIndex: clipIndex}
}
