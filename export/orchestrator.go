// Package export implements ExportOrchestrator: frame-exact audio/video
// alignment, optional GPU color conversion, bounded back-pressure, and
// timeout-driven fatal detection, feeding a single ffmpeg muxer process.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/capcore/capcore/audiorender"
	"github.com/capcore/capcore/internal/corerr"
	"github.com/capcore/capcore/project"
	"github.com/capcore/capcore/scene"
	"github.com/capcore/capcore/text"
	"github.com/capcore/capcore/timeline"
	"github.com/capcore/capcore/videoio"
)

const (
	firstFrameTimeout     = 120 * time.Second
	subsequentTimeout     = 90 * time.Second
	maxConsecutiveTimeout = 3

	// gpuConversionEnvVar opts into the GPU RGBA->NV12 path (§6).
	gpuConversionEnvVar = "CAP_GPU_FORMAT_CONVERSION"
)

// gpuConverter is the subset of gpuconv.Converter the orchestrator needs;
// kept as an interface so tests can substitute a fake GPU path.
type gpuConverter interface {
	Convert(rgba []byte) (NV12, error)
}

// NV12 mirrors gpuconv.NV12Frame's plane layout without importing the GL
// package into this interface boundary.
type NV12 struct {
	Y  []byte
	UV []byte
}

// Options configures one export run.
type Options struct {
	Width, Height int
	FPS           int
	Compression   Compression
	OutputPath    string
	FFmpegPath    string
	ProjectDir    string
	RAMTier       RAMTier
	GPUConverter  gpuConverter // nil unless CAP_GPU_FORMAT_CONVERSION is set and init succeeded
}

// Orchestrator drives VideoSource+FrameRenderer+AudioRenderer through the
// project's full duration and feeds a Muxer.
type Orchestrator struct {
	source   videoio.VideoSource
	renderer videoio.FrameRenderer
	audio    *audiorender.Renderer
	cfg      *project.Configuration
	opts     Options
}

func New(source videoio.VideoSource, renderer videoio.FrameRenderer, audio *audiorender.Renderer, cfg *project.Configuration, opts Options) *Orchestrator {
	return &Orchestrator{source: source, renderer: renderer, audio: audio, cfg: cfg, opts: opts}
}

// GPUConversionRequested reports whether the environment opts into the
// GPU color-conversion path.
func GPUConversionRequested() bool {
	v := os.Getenv(gpuConversionEnvVar)
	return v == "1" || v == "true"
}

// Run drives the full export: one video frame per fps tick across
// durationSecs, aligned audio per frame via the discrete sample-accounting
// rule, into a Muxer that reads the video and audio channels Run creates.
func (o *Orchestrator) Run(ctx context.Context, durationSecs float64) error {
	pixFmt := PixFmtBGRA
	if o.opts.GPUConverter != nil {
		pixFmt = PixFmtNV12
	}

	bitrate := o.opts.Compression.VideoBitrate(o.opts.Width, o.opts.Height, o.opts.FPS)
	videoCh := make(chan VideoFrame, o.opts.RAMTier.VideoRxDepth())
	audioCh := make(chan AudioFrame, o.opts.RAMTier.EncoderTxDepth())

	muxer := &Muxer{
		Width: o.opts.Width, Height: o.opts.Height, FPS: o.opts.FPS,
		SampleRate: audiorender.MixRate, Bitrate: bitrate, PixFmt: pixFmt,
		OutputPath: o.opts.OutputPath, FFmpegPath: o.opts.FFmpegPath,
		VideoFrames: videoCh, AudioFrames: audioCh,
	}

	muxErr := make(chan error, 1)
	go func() { muxErr <- muxer.RunLocked() }()

	totalFrames := int(durationSecs * float64(o.opts.FPS))
	o.audio.SetPlayhead(0, o.cfg)

	consecutiveTimeouts := 0
	for f := 0; f < totalFrames; f++ {
		timeout := subsequentTimeout
		if f == 0 {
			timeout = firstFrameTimeout
		}

		frameCtx, cancel := context.WithTimeout(ctx, timeout)
		rgba, err := o.renderVideoFrame(frameCtx, f)
		timedOut := errors.Is(frameCtx.Err(), context.DeadlineExceeded)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				close(videoCh)
				close(audioCh)
				return ctx.Err()
			}
			if timedOut {
				consecutiveTimeouts++
				log.Warn().Int("frame", f).Int("consecutive_timeouts", consecutiveTimeouts).Msg("export: frame receive timed out")
				if consecutiveTimeouts >= maxConsecutiveTimeout {
					close(videoCh)
					close(audioCh)
					return fmt.Errorf("%w: %d consecutive timeouts at frame %d", corerr.ErrExportTimeout, consecutiveTimeouts, f)
				}
				f--
				continue
			}
			close(videoCh)
			close(audioCh)
			return err
		}
		consecutiveTimeouts = 0

		if f == 0 {
			saveFirstFrameScreenshot(o.opts.ProjectDir, rgba)
		}

		videoData, err := o.packVideoFrame(rgba, pixFmt)
		if err != nil {
			close(videoCh)
			close(audioCh)
			return err
		}

		start, n := AudioSliceFor(f, o.opts.FPS, audiorender.MixRate)
		_, samples, _ := o.audio.Render(int(n), o.cfg)
		if samples == nil {
			samples = make([]float32, 2*n)
		}

		select {
		case videoCh <- VideoFrame{Data: videoData}:
		case <-ctx.Done():
			close(videoCh)
			close(audioCh)
			return ctx.Err()
		}
		select {
		case audioCh <- AudioFrame{PTS: start, Samples: samples}:
		case <-ctx.Done():
			close(videoCh)
			close(audioCh)
			return ctx.Err()
		}
	}

	close(videoCh)
	close(audioCh)
	return <-muxErr
}

func (o *Orchestrator) renderVideoFrame(ctx context.Context, f int) (videoio.RGBAFrame, error) {
	t := float64(f) / float64(o.opts.FPS)

	sceneResult := scene.At(o.cfg.Timeline.SceneSegments, t)
	textFrames := text.At(o.cfg.Timeline.TextSegments, t, o.opts.Width, o.opts.Height)

	resolved := timeline.At(o.cfg.Timeline.Segments, t)
	frame, err := o.source.FrameAt(ctx, resolved.Segment.ClipIndex, resolved.SegmentTime)
	if err != nil {
		return videoio.RGBAFrame{}, err
	}

	uniforms := videoio.SceneUniforms{
		Time: t, OutputWidth: o.opts.Width, OutputHeight: o.opts.Height,
		CameraOpacity: sceneResult.CameraOpacity, ScreenOpacity: sceneResult.ScreenOpacity,
		CameraScale: sceneResult.CameraScale, CameraZoom: sceneResult.CameraOnlyZoom,
		CameraBlur: sceneResult.CameraOnlyBlur, ScreenBlur: sceneResult.ScreenBlur,
		IsSplitScreen: sceneResult.IsSplitScreen, SplitCameraX: sceneResult.SplitCameraXRatio,
		SplitDisplayX: sceneResult.SplitDisplayXRatio, TextLayers: textLayersFrom(textFrames),
	}

	return o.renderer.Render(ctx, uniforms, frame)
}

func (o *Orchestrator) packVideoFrame(rgba videoio.RGBAFrame, pixFmt PixFmt) ([]byte, error) {
	if pixFmt == PixFmtBGRA {
		return rgbaToBGRA(rgba.Pix), nil
	}
	nv12, err := o.opts.GPUConverter.Convert(rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", corerr.ErrGPUConversion, err)
	}
	return append(append([]byte{}, nv12.Y...), nv12.UV...), nil
}

func rgbaToBGRA(rgba []byte) []byte {
	out := make([]byte, len(rgba))
	for i := 0; i+3 < len(rgba); i += 4 {
		out[i+0] = rgba[i+2]
		out[i+1] = rgba[i+1]
		out[i+2] = rgba[i+0]
		out[i+3] = rgba[i+3]
	}
	return out
}

func textLayersFrom(frames []text.Frame) []videoio.TextLayer {
	layers := make([]videoio.TextLayer, len(frames))
	for i, f := range frames {
		layers[i] = videoio.TextLayer{
			Left: f.Left, Top: f.Top, Right: f.Right, Bottom: f.Bottom,
			FontSizePx: f.FontSizePx, Opacity: f.Opacity, Color: f.Color, Content: f.Content,
		}
	}
	return layers
}
