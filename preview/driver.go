// Package preview implements PreviewDriver: debounced playhead changes
// drive decode+render, and a result superseded by a newer playhead request
// is dropped rather than delivered; a decode already running is not
// interrupted by the newer request. The interactive scene/text evaluation
// stays as cheap, synchronous calls into scene and text.
package preview

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/capcore/capcore/project"
	"github.com/capcore/capcore/scene"
	"github.com/capcore/capcore/text"
	"github.com/capcore/capcore/timeline"
	"github.com/capcore/capcore/videoio"
	"github.com/rs/zerolog/log"
)

// debounceWindow collapses bursts of scrub events (e.g. a dragged
// timeline cursor) into a single decode/render per settle.
const debounceWindow = 30 * time.Millisecond

// exportThrottle is the suspension delay the preview task adds between
// requests while an export is running concurrently, so it does not starve
// the export task for decoder bandwidth.
const exportThrottle = 100 * time.Millisecond

// OnFrame is invoked with the rendered frame for the most recent settled
// playhead position. Calls for stale requests are never delivered.
type OnFrame func(videoio.RGBAFrame, error)

// Driver owns the watch-channel + cancellation-token state machine
// described for the preview task.
type Driver struct {
	source   videoio.VideoSource
	renderer videoio.FrameRenderer
	onFrame  OnFrame

	mu       sync.RWMutex
	timeline project.Timeline
	outW     int
	outH     int

	generation   atomic.Int64
	exportActive atomic.Bool

	requests chan float64
	done     chan struct{}
	wg       sync.WaitGroup
}

// New starts the driver's background loop. Call Dispose to stop it.
func New(source videoio.VideoSource, renderer videoio.FrameRenderer, tl project.Timeline, outW, outH int, onFrame OnFrame) *Driver {
	d := &Driver{
		source:   source,
		renderer: renderer,
		onFrame:  onFrame,
		timeline: tl,
		outW:     outW,
		outH:     outH,
		requests: make(chan float64, 1),
		done:     make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// SetTimeline replaces the timeline the driver evaluates against (e.g.
// after an edit). Takes effect for the next settled render.
func (d *Driver) SetTimeline(tl project.Timeline) {
	d.mu.Lock()
	d.timeline = tl
	d.mu.Unlock()
}

// SetExportActive gates the 100ms inter-request throttle while an export
// is in flight.
func (d *Driver) SetExportActive(active bool) {
	d.exportActive.Store(active)
}

// SetPlayhead enqueues a new playhead position, replacing any pending,
// not-yet-settled request — the "watch channel holding the latest value"
// pattern.
func (d *Driver) SetPlayhead(t float64) {
	d.generation.Add(1)
	select {
	case d.requests <- t:
	default:
		select {
		case <-d.requests:
		default:
		}
		d.requests <- t
	}
}

// Dispose cancels the background loop and waits for it to exit.
func (d *Driver) Dispose() {
	close(d.done)
	d.wg.Wait()
}

func (d *Driver) run() {
	defer d.wg.Done()
	var pending float64
	var have bool
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-d.done:
			return
		case t := <-d.requests:
			pending, have = t, true
			timer.Reset(debounceWindow)
		case <-timer.C:
			if !have {
				continue
			}
			have = false
			d.settle(pending)
			if d.exportActive.Load() {
				time.Sleep(exportThrottle)
			}
		}
	}
}

func (d *Driver) settle(t float64) {
	gen := d.generation.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frame, err := d.renderAt(ctx, t)

	if d.generation.Load() != gen {
		return // superseded while decoding; drop silently
	}
	if d.onFrame != nil {
		d.onFrame(frame, err)
	}
}

func (d *Driver) renderAt(ctx context.Context, t float64) (videoio.RGBAFrame, error) {
	d.mu.RLock()
	tl, outW, outH := d.timeline, d.outW, d.outH
	d.mu.RUnlock()

	resolved := timeline.At(tl.Segments, t)
	if !resolved.Found {
		return videoio.RGBAFrame{}, nil
	}
	sceneResult := scene.At(tl.SceneSegments, t)
	textFrames := text.At(tl.TextSegments, t, outW, outH)

	frame, err := d.source.FrameAt(ctx, resolved.Segment.ClipIndex, resolved.SegmentTime)
	if err != nil {
		log.Warn().Err(err).Uint32("clip_index", resolved.Segment.ClipIndex).Msg("preview: no frame for clip, skipping")
		return videoio.RGBAFrame{}, nil
	}

	uniforms := videoio.SceneUniforms{
		Time:          t,
		OutputWidth:   outW,
		OutputHeight:  outH,
		CameraOpacity: sceneResult.CameraOpacity,
		ScreenOpacity: sceneResult.ScreenOpacity,
		CameraScale:   sceneResult.CameraScale,
		CameraZoom:    sceneResult.CameraOnlyZoom,
		CameraBlur:    sceneResult.CameraOnlyBlur,
		ScreenBlur:    sceneResult.ScreenBlur,
		IsSplitScreen: sceneResult.IsSplitScreen,
		SplitCameraX:  sceneResult.SplitCameraXRatio,
		SplitDisplayX: sceneResult.SplitDisplayXRatio,
		TextLayers:    toTextLayers(textFrames),
	}

	return d.renderer.Render(ctx, uniforms, frame)
}

func toTextLayers(frames []text.Frame) []videoio.TextLayer {
	layers := make([]videoio.TextLayer, len(frames))
	for i, f := range frames {
		layers[i] = videoio.TextLayer{
			Left: f.Left, Top: f.Top, Right: f.Right, Bottom: f.Bottom,
			FontSizePx: f.FontSizePx, Opacity: f.Opacity, Color: f.Color, Content: f.Content,
		}
	}
	return layers
}
