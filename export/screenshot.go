package export

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/capcore/capcore/videoio"
)

// screenshotQuality matches the original's fixed JPEG quality for the
// first-frame thumbnail.
const screenshotQuality = 85

// saveFirstFrameScreenshot rasterises an RGBA frame to RGB and writes it
// best-effort to <projectDir>/screenshots/display.jpg. Stdlib image/jpeg is
// used deliberately — no pack example reaches for a third-party JPEG
// encoder either.
func saveFirstFrameScreenshot(projectDir string, frame videoio.RGBAFrame) {
	dir := filepath.Join(projectDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Msg("export: could not create screenshots dir")
		return
	}

	img := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	copy(img.Pix, frame.Pix)

	path := filepath.Join(dir, "display.jpg")
	f, err := os.Create(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("export: could not create screenshot file")
		return
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: screenshotQuality}); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("export: screenshot encode failed")
	}
}
