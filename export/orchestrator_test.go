package export_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/capcore/capcore/audiorender"
	"github.com/capcore/capcore/export"
	"github.com/capcore/capcore/internal/testfake"
	"github.com/capcore/capcore/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression_BitsPerPixelAndBitrate(t *testing.T) {
	assert.Equal(t, 0.3, export.CompressionMax.BitsPerPixel())
	assert.Equal(t, 0.15, export.CompressionSocial.BitsPerPixel())
	assert.Equal(t, 0.08, export.CompressionWeb.BitsPerPixel())
	assert.Equal(t, 0.04, export.CompressionPotato.BitsPerPixel())

	br := export.CompressionSocial.VideoBitrate(1920, 1080, 30)
	assert.Equal(t, int64(0.15*1920*1080*30), br)
}

func TestRAMTier_DepthsHalveCorrectly(t *testing.T) {
	for _, tier := range []export.RAMTier{export.RAMTierLow, export.RAMTierMedium, export.RAMTierHigh, export.RAMTierVeryHigh} {
		assert.Equal(t, tier.VideoRxDepth()/2, tier.EncoderTxDepth())
	}
}

func TestGPUConversionRequested_ReadsEnvVar(t *testing.T) {
	os.Unsetenv("CAP_GPU_FORMAT_CONVERSION")
	assert.False(t, export.GPUConversionRequested())

	os.Setenv("CAP_GPU_FORMAT_CONVERSION", "1")
	defer os.Unsetenv("CAP_GPU_FORMAT_CONVERSION")
	assert.True(t, export.GPUConversionRequested())
}

func TestOrchestrator_RunProducesScreenshotOnFirstFrame(t *testing.T) {
	cfg := &project.Configuration{
		Timeline: project.Timeline{
			Segments: []project.TimelineSegment{{ClipIndex: 0, Start: 0, End: 1, Timescale: 1}},
		},
	}
	audio := audiorender.NewRenderer(nil)
	dir := t.TempDir()

	o := export.New(&testfake.Source{}, testfake.Renderer{}, audio, cfg, export.Options{
		Width: 4, Height: 4, FPS: 2, Compression: export.CompressionWeb,
		OutputPath: filepath.Join(dir, "out.mp4"), ProjectDir: dir, RAMTier: export.RAMTierLow,
	})

	// Running the real muxer would shell out to ffmpeg; this test only
	// exercises frame production and the screenshot side effect up to the
	// point the muxer goroutine is asked to run, so we don't assert on
	// the final error (it depends on ffmpeg being present on PATH).
	_ = o.Run(context.Background(), 0.5)

	_, err := os.Stat(filepath.Join(dir, "screenshots", "display.jpg"))
	require.NoError(t, err)
}
