package importer

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// LoadImage loads a sprite image from a file path with WebP support.
func LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
		if _, err := f.Seek(0, 0); err == nil {
			if img, _, err := image.Decode(f); err == nil {
				return img, nil
			}
		}
	} else {
		if _, err := f.Seek(0, 0); err == nil {
			if img, _, err := image.Decode(f); err == nil {
				return img, nil
			}
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// SavePreview writes an upscaled nearest-neighbor preview of the sprite, so
// small sprites are inspectable at a glance. Factor 1 saves unchanged.
func SavePreview(img image.Image, path string, factor int) error {
	if factor < 1 {
		return fmt.Errorf("save preview: factor %d out of range", factor)
	}
	out := img
	if factor > 1 {
		bounds := img.Bounds()
		out = imaging.Resize(img, bounds.Dx()*factor, bounds.Dy()*factor, imaging.NearestNeighbor)
	}
	return imaging.Save(out, path)
}
