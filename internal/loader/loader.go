package loader

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	apperrors "go-photo-feedback/internal/errors"
)

// ImageLoader decodes raw photo bytes into pixel data ready for scoring.
type ImageLoader interface {
	Decode(data []byte) (image.Image, error)
}

type imageLoader struct {
	maxDimension int
}

// NewImageLoader creates a loader that decodes jpeg/png/gif/webp and
// downscales anything whose longest side exceeds maxDimension. Scoring is
// resolution-independent enough that analyzing a bounded-size copy keeps
// latency flat without changing the verdicts.
func NewImageLoader(maxDimension int) ImageLoader {
	return &imageLoader{maxDimension: maxDimension}
}

func (l *imageLoader) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, apperrors.NewDecodeError("empty image payload", nil)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError("could not decode image bytes", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, apperrors.NewInvalidInputError("image has zero width or height", nil)
	}

	if width > l.maxDimension || height > l.maxDimension {
		img = imaging.Fit(img, l.maxDimension, l.maxDimension, imaging.Lanczos)
	}
	return img, nil
}
