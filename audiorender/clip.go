package audiorender

import "github.com/capcore/capcore/project"

// ClipTracks bundles the (up to three) decoded audio sources a single
// video clip may carry. A nil field means that track was never captured
// for this clip (e.g. no system audio) — per SPEC_FULL §11, a clip with no
// capture for a role contributes nothing, rather than silence-padding the
// mix track count.
type ClipTracks struct {
	Mic          Source
	CameraMic    Source
	SystemAudio  Source
}

// roleTrack pairs a TrackRole with the Source it resolves to for visitor
// iteration, avoiding a closure per spec §9's design note.
type roleTrack struct {
	role   project.TrackRole
	source Source
}

func (c ClipTracks) roles() []roleTrack {
	var out []roleTrack
	if c.Mic != nil {
		out = append(out, roleTrack{project.TrackRoleMic, c.Mic})
	}
	if c.CameraMic != nil {
		out = append(out, roleTrack{project.TrackRoleCameraMic, c.CameraMic})
	}
	if c.SystemAudio != nil {
		out = append(out, roleTrack{project.TrackRoleSystemAudio, c.SystemAudio})
	}
	return out
}

// gainDB returns the configured gain for role from audio, the visitor step
// that replaces the original's per-track closure.
func gainDB(role project.TrackRole, audio project.AudioConfiguration) float32 {
	switch role {
	case project.TrackRoleMic:
		return audio.MicVolumeDB
	case project.TrackRoleCameraMic:
		return audio.CameraMicVolumeDB
	case project.TrackRoleSystemAudio:
		return audio.SystemAudioVolumeDB
	default:
		return audiomixSilence
	}
}

func stereoModeFor(role project.TrackRole, audio project.AudioConfiguration) project.StereoMode {
	if role == project.TrackRoleSystemAudio {
		return audio.SystemStereoMode
	}
	return audio.MicStereoMode
}

func offsetSecondsFor(role project.TrackRole, co project.ClipOffsets) float32 {
	switch role {
	case project.TrackRoleMic:
		return co.MicOffsetSeconds
	case project.TrackRoleCameraMic:
		return co.CameraMicOffsetSec
	case project.TrackRoleSystemAudio:
		return co.SystemAudioOffsSec
	default:
		return 0
	}
}

const audiomixSilence = -1000 // comfortably below SilenceFloorDB
