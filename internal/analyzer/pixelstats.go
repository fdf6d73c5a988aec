package analyzer

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	apperrors "go-photo-feedback/internal/errors"
)

// Grayscale conversion uses the Rec.601 luma weights. These are fixed:
// changing them would shift every downstream score.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// GrayscaleHistogram is the 256-bin intensity distribution of a photo
// plus its derived mean and standard deviation.
type GrayscaleHistogram struct {
	Bins   [256]float64
	Mean   float64
	StdDev float64
}

// grayscalePlane converts an image to a row-major 0-255 intensity slice.
// Fails with an invalid_input error for degenerate dimensions.
func grayscalePlane(img image.Image) ([]float64, int, int, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, 0, 0, apperrors.NewInvalidInputError("image has zero width or height", nil)
	}

	plane := make([]float64, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// 16-bit channels down to the 0-255 scale
			luma := lumaR*float64(r>>8) + lumaG*float64(g>>8) + lumaB*float64(b>>8)
			plane = append(plane, luma)
		}
	}
	return plane, width, height, nil
}

// computeHistogram bins a grayscale plane and derives mean and standard
// deviation of intensity, weighting each level by its pixel count.
func computeHistogram(plane []float64) GrayscaleHistogram {
	var hist GrayscaleHistogram
	for _, v := range plane {
		idx := int(math.Round(v))
		if idx < 0 {
			idx = 0
		} else if idx > 255 {
			idx = 255
		}
		hist.Bins[idx]++
	}

	levels := make([]float64, 256)
	for i := range levels {
		levels[i] = float64(i)
	}
	hist.Mean = stat.Mean(levels, hist.Bins[:])
	hist.StdDev = stat.StdDev(levels, hist.Bins[:])
	if math.IsNaN(hist.StdDev) {
		// Single-pixel images leave the weighted variance undefined.
		hist.StdDev = 0
	}
	return hist
}

// computeEdgeVariance applies the discrete Laplacian kernel
// [0,1,0; 1,-4,1; 0,1,0] over the interior of a grayscale plane and
// returns the variance of the responses. Higher variance means more
// high-frequency detail, i.e. sharper focus. Images too small to hold
// the kernel yield zero.
func computeEdgeVariance(plane []float64, width, height int) float64 {
	if width < 3 || height < 3 {
		return 0
	}

	responses := make([]float64, 0, (width-2)*(height-2))
	for y := 1; y < height-1; y++ {
		row := y * width
		for x := 1; x < width-1; x++ {
			center := plane[row+x]
			top := plane[row-width+x]
			bottom := plane[row+width+x]
			left := plane[row+x-1]
			right := plane[row+x+1]
			responses = append(responses, -4*center+top+bottom+left+right)
		}
	}
	if len(responses) < 2 {
		return 0
	}
	return stat.Variance(responses, nil)
}
