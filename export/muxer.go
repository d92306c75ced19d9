package export

import (
	"fmt"
	"io"
	"math"
	"runtime"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/capcore/capcore/internal/corerr"
)

// PixFmt is the muxer's video pipe format for the whole run. The GPU
// converter only ever falls back to the CPU path at init (§7), never
// mid-stream, so this is fixed for the life of one export.
type PixFmt int

const (
	PixFmtBGRA PixFmt = iota
	PixFmtNV12
)

func (p PixFmt) ffmpegName() string {
	if p == PixFmtNV12 {
		return "nv12"
	}
	return "bgra"
}

// VideoFrame is one encoded video frame's raw bytes, already in the
// muxer's configured PixFmt.
type VideoFrame struct {
	Data []byte
}

// AudioFrame is one interleaved stereo f32 chunk with its PTS in samples.
type AudioFrame struct {
	PTS     int64
	Samples []float32
}

// Muxer drives a single ffmpeg subprocess over two raw pipes (video,
// audio), adapted from the teacher's RunOffscreen single-pipe pattern.
// It must run on a dedicated OS thread (§5): call RunLocked from a
// goroutine reserved for that purpose.
type Muxer struct {
	Width, Height int
	FPS           int
	SampleRate    int
	Bitrate       int64
	PixFmt        PixFmt
	OutputPath    string
	FFmpegPath    string

	VideoFrames <-chan VideoFrame
	AudioFrames <-chan AudioFrame
}

// RunLocked locks the calling goroutine to its OS thread for the duration
// of the mux, mirroring cmd/main.go's runtime.LockOSThread() pattern, and
// runs the mux to completion.
func (m *Muxer) RunLocked() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	return m.run()
}

func (m *Muxer) run() error {
	videoReader, videoWriter := io.Pipe()
	audioReader, audioWriter := io.Pipe()

	videoInput := ffmpeg.Input("pipe:0", ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": m.PixFmt.ffmpegName(),
		"s":       fmt.Sprintf("%dx%d", m.Width, m.Height),
		"r":       fmt.Sprintf("%d", m.FPS),
	}).WithInput(videoReader)

	audioInput := ffmpeg.Input("pipe:1", ffmpeg.KwArgs{
		"format": "f32le",
		"ar":     fmt.Sprintf("%d", m.SampleRate),
		"ac":     "2",
	}).WithInput(audioReader)

	cmd := ffmpeg.Output([]*ffmpeg.Stream{videoInput, audioInput}, m.OutputPath, ffmpeg.KwArgs{
		"c:v":     "libx264",
		"b:v":     fmt.Sprintf("%d", m.Bitrate),
		"c:a":     "aac",
		"pix_fmt": "yuv420p",
	}).OverWriteOutput().ErrorToStdOut()

	if m.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(m.FFmpegPath)
	}

	runErr := make(chan error, 1)
	go func() { runErr <- cmd.Run() }()

	videoDone := make(chan error, 1)
	go func() { videoDone <- m.pumpVideo(videoWriter) }()

	audioDone := make(chan error, 1)
	go func() { audioDone <- m.pumpAudio(audioWriter) }()

	videoErr := <-videoDone
	audioErr := <-audioDone

	if videoErr != nil {
		return fmt.Errorf("%w: video mux: %v", corerr.ErrEncoderClosed, videoErr)
	}
	if audioErr != nil {
		return fmt.Errorf("%w: audio mux: %v", corerr.ErrEncoderClosed, audioErr)
	}
	return <-runErr
}

func (m *Muxer) pumpVideo(w *io.PipeWriter) error {
	defer w.Close()
	for frame := range m.VideoFrames {
		if _, err := w.Write(frame.Data); err != nil {
			return err
		}
	}
	return nil
}

func (m *Muxer) pumpAudio(w *io.PipeWriter) error {
	defer w.Close()
	for frame := range m.AudioFrames {
		if err := writeFloat32LE(w, frame.Samples); err != nil {
			return err
		}
	}
	return nil
}

func writeFloat32LE(w io.Writer, samples []float32) error {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		bits := math.Float32bits(s)
		buf[i*4+0] = byte(bits)
		buf[i*4+1] = byte(bits >> 8)
		buf[i*4+2] = byte(bits >> 16)
		buf[i*4+3] = byte(bits >> 24)
	}
	_, err := w.Write(buf)
	return err
}
