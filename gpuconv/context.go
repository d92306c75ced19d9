// Package gpuconv implements the RGBA->NV12 color-conversion compute pass
// that export's video path runs when CAP_GPU_FORMAT_CONVERSION is set. It
// is the only in-scope "rendering" this module owns (the GL surface
// renderer for scene content is an external collaborator).
package gpuconv

import (
	"fmt"

	"github.com/capcore/capcore/glfwcontext"
)

func newContext(width, height int) (*glfwcontext.Context, error) {
	ctx, err := glfwcontext.NewHeadlessContext(width, height)
	if err != nil {
		return nil, fmt.Errorf("headless gl context: %w", err)
	}
	return ctx, nil
}
