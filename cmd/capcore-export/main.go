// Command capcore-export drives a headless export of a capcore project to
// MP4, adapted from the teacher's flag-driven cmd/main.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/capcore/capcore/audiorender"
	"github.com/capcore/capcore/export"
	"github.com/capcore/capcore/gpuconv"
	"github.com/capcore/capcore/internal/capslog"
	"github.com/capcore/capcore/internal/testfake"
	"github.com/capcore/capcore/project"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	projectPath := flag.String("project", "", "path to the project configuration JSON")
	outputPath := flag.String("output", "output.mp4", "output MP4 path")
	width := flag.Int("width", 1920, "output width")
	height := flag.Int("height", 1080, "output height")
	fps := flag.Int("fps", 30, "output frame rate")
	duration := flag.Float64("duration", 0, "export duration in seconds (0 = derive from last timeline segment)")
	compression := flag.String("compression", "social", "max|social|web|potato")
	ffmpegPath := flag.String("ffmpeg", "", "path to ffmpeg executable")
	flag.Parse()

	log := capslog.Component("cmd/capcore-export")

	if *projectPath == "" {
		fmt.Fprintln(os.Stderr, "capcore-export: -project is required")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := project.Load(*projectPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load project")
	}

	comp := parseCompression(*compression)
	dur := *duration
	if dur == 0 {
		dur = lastSegmentEnd(cfg)
	}

	opts := export.Options{
		Width: *width, Height: *height, FPS: *fps,
		Compression: comp, OutputPath: *outputPath, FFmpegPath: ffmpegPath(*ffmpegPath),
		ProjectDir: filepath.Dir(*projectPath), RAMTier: export.DetectRAMTier(),
	}

	if export.GPUConversionRequested() {
		conv, err := gpuconv.New(*width, *height)
		if err != nil {
			log.Warn().Err(err).Msg("gpu converter init failed, falling back to CPU path")
		} else {
			defer conv.Close()
			opts.GPUConverter = export.GPUAdapter{Converter: conv}
		}
	}

	// VideoSource/FrameRenderer are out-of-scope collaborators (§1); this
	// CLI wires the in-memory fake until a real decoder/renderer is bound.
	audio := audiorender.NewRenderer(nil)
	orch := export.New(&testfake.Source{}, testfake.Renderer{}, audio, cfg, opts)

	if err := orch.Run(context.Background(), dur); err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}
	log.Info().Str("output", *outputPath).Msg("export complete")
}

func parseCompression(s string) export.Compression {
	switch s {
	case "max":
		return export.CompressionMax
	case "web":
		return export.CompressionWeb
	case "potato":
		return export.CompressionPotato
	default:
		return export.CompressionSocial
	}
}

func lastSegmentEnd(cfg *project.Configuration) float64 {
	var end float64
	for _, seg := range cfg.Timeline.Segments {
		if seg.End > end {
			end = seg.End
		}
	}
	return end
}

func ffmpegPath(p string) string {
	if p != "" {
		return p
	}
	return os.Getenv("CAP_FFMPEG_PATH")
}
