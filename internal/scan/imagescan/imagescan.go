// Package imagescan extracts dominant-colour pairs from raster
// images. A screenshot or mockup quantizes to a small palette; each
// palette colour is checked against the most dominant one, which
// stands in for the canvas. Findings are advisory, there is no text
// detection.
package imagescan

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF format
	_ "image/jpeg" // register JPEG format
	_ "image/png"  // register PNG format
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP format
	_ "golang.org/x/image/tiff" // register TIFF format
	_ "golang.org/x/image/webp" // register WebP format

	"github.com/jmylchreest/albedo/internal/colour"
	"github.com/jmylchreest/albedo/internal/scan"
)

var supportedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

const (
	// maxSamples bounds the pixels read per image; larger images are
	// sampled on a uniform grid.
	maxSamples = 4096
	// maxPalette caps how many dominant colours one image reports.
	maxPalette = 8
)

type Scanner struct{}

func New() *Scanner { return &Scanner{} }

func (s *Scanner) Name() string { return "image" }

func (s *Scanner) Description() string {
	return "Dominant colour contrast in screenshots and mockup images"
}

func (s *Scanner) Scan(ctx context.Context, opts scan.Options) ([]scan.Pair, error) {
	log := opts.Log().Named("image")

	var pairs []scan.Pair
	for _, path := range opts.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !supportedExt[strings.ToLower(filepath.Ext(path))] {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			log.Debug("skipping unreadable file", "path", path, "error", err)
			continue
		}
		if info.Size() > opts.MaxBytes() {
			log.Debug("skipping oversized file", "path", path, "size", info.Size(), "max", opts.MaxBytes())
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			log.Debug("skipping unreadable file", "path", path, "error", err)
			continue
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			log.Debug("skipping undecodable image", "path", path, "error", err)
			continue
		}
		filePairs := buildPairs(s.Name(), scan.Rel(opts.Root, path), img)
		pairs = append(pairs, scan.Dedupe(filePairs)...)
	}
	return pairs, nil
}

// swatch is one occupied cell of the quantisation grid. The colour it
// reports is the channel average of its members, so flat fills come
// back exact.
type swatch struct {
	key     uint16
	count   int
	r, g, b uint64
}

func (s swatch) colour() colour.Colour {
	n := uint64(s.count)
	return colour.Colour{R: uint8(s.r / n), G: uint8(s.g / n), B: uint8(s.b / n)}
}

// buildPairs pairs every dominant colour against the most dominant
// one. Image findings carry no line number; they cover the whole
// file.
func buildPairs(scanner, file string, img image.Image) []scan.Pair {
	swatches, sampled := dominantColours(img)
	if len(swatches) < 2 {
		return nil
	}

	canvas := swatches[0].colour().Hex()
	canvasPct := percent(swatches[0].count, sampled)

	var pairs []scan.Pair
	for _, sw := range swatches[1:] {
		hex := sw.colour().Hex()
		if hex == canvas {
			continue
		}
		pairs = append(pairs, scan.Pair{
			Scanner:    scanner,
			File:       file,
			Context:    fmt.Sprintf("%d%% over %d%% of pixels", percent(sw.count, sampled), canvasPct),
			Role:       scan.RoleGraphic,
			Foreground: hex,
			Background: canvas,
		})
	}
	return pairs
}

// dominantColours samples the image on a uniform grid, quantizes each
// opaque pixel to a 4-bit-per-channel cell and keeps the cells
// covering at least 1% of samples, most dominant first.
func dominantColours(img image.Image) ([]swatch, int) {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return nil, 0
	}

	step := 1
	if total > maxSamples {
		step = int(math.Ceil(math.Sqrt(float64(total) / float64(maxSamples))))
	}

	buckets := make(map[uint16]*swatch)
	sampled := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				continue
			}
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			key := uint16(r8>>4)<<8 | uint16(g8>>4)<<4 | uint16(b8>>4)
			sw := buckets[key]
			if sw == nil {
				sw = &swatch{key: key}
				buckets[key] = sw
			}
			sw.count++
			sw.r += uint64(r8)
			sw.g += uint64(g8)
			sw.b += uint64(b8)
			sampled++
		}
	}
	if sampled == 0 {
		return nil, 0
	}

	swatches := make([]swatch, 0, len(buckets))
	for _, sw := range buckets {
		if sw.count*100 >= sampled {
			swatches = append(swatches, *sw)
		}
	}
	slices.SortFunc(swatches, func(a, b swatch) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return int(a.key) - int(b.key)
	})
	if len(swatches) > maxPalette {
		swatches = swatches[:maxPalette]
	}
	return swatches, sampled
}

func percent(count, total int) int {
	return int(math.Round(100 * float64(count) / float64(total)))
}
