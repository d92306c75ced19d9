// Package testfake provides in-memory VideoSource/FrameRenderer
// implementations for PreviewDriver and ExportOrchestrator tests, standing
// in for the out-of-scope decoder and GL surface renderer.
package testfake

import (
	"context"
	"fmt"

	"github.com/capcore/capcore/videoio"
)

// Source returns a deterministic solid-color frame per clip; no actual
// decode happens.
type Source struct {
	FailClip uint32 // if set, FrameAt for this clip index always errors
}

func (s *Source) FrameAt(ctx context.Context, clipIndex uint32, clipLocalTime float64) (videoio.Frame, error) {
	if s.FailClip != 0 && clipIndex == s.FailClip {
		return videoio.Frame{}, fmt.Errorf("testfake: no frame for clip %d at %.3f", clipIndex, clipLocalTime)
	}
	return videoio.Frame{ClipIndex: clipIndex, ClipLocalTime: clipLocalTime, Width: 4, Height: 4, Data: make([]byte, 4*4*4)}, nil
}

// Renderer stamps the uniforms' opacity values into the red/alpha
// channels so tests can assert composition order without a real GPU.
type Renderer struct{}

func (Renderer) Render(ctx context.Context, uniforms videoio.SceneUniforms, frame videoio.Frame) (videoio.RGBAFrame, error) {
	w, h := uniforms.OutputWidth, uniforms.OutputHeight
	if w == 0 || h == 0 {
		w, h = frame.Width, frame.Height
	}
	pix := make([]byte, w*h*4)
	r := byte(uniforms.CameraOpacity * 255)
	a := byte(uniforms.ScreenOpacity * 255)
	for i := 0; i < w*h; i++ {
		pix[i*4+0] = r
		pix[i*4+3] = a
	}
	return videoio.RGBAFrame{Width: w, Height: h, Pix: pix}, nil
}
