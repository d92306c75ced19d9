package export

import "github.com/capcore/capcore/gpuconv"

// GPUAdapter adapts a *gpuconv.Converter to the orchestrator's gpuConverter
// interface, so this package need not import the GL-bound gpuconv types
// into its own public surface.
type GPUAdapter struct {
	Converter *gpuconv.Converter
}

func (a GPUAdapter) Convert(rgba []byte) (NV12, error) {
	frame, err := a.Converter.Convert(rgba)
	if err != nil {
		return NV12{}, err
	}
	return NV12{Y: frame.Y, UV: frame.UV}, nil
}
