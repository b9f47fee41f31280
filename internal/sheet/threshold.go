package sheet

import (
	"image"
	"image/color"

	"github.com/ekle/fontsheet/internal/core"
)

// DefaultThreshold is used when no threshold has been configured.
const DefaultThreshold = 0.5

// Binarize maps every pixel of src to either opaque black or fully
// transparent white. Pixels with a straight alpha below threshold become
// transparent, all others black. threshold is not clamped: values below 0
// make the whole image black, values above 1 make it transparent.
//
// If src cannot be turned into a pixel buffer, src is returned unchanged.
func Binarize(src image.Image, threshold float64) image.Image {
	dst, err := binarize(src, threshold)
	if err != nil {
		tracer().Errorf("%v; sheet is left unbinarized", err)
		return src
	}
	return dst
}

func binarize(src image.Image, threshold float64) (*image.NRGBA, error) {
	if src == nil {
		return nil, core.Error(core.ERASTER, "no image to binarize")
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, core.Error(core.ERASTER, "cannot binarize empty image %v", b)
	}
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if alpha(src.At(x, y)) < threshold {
				dst.SetNRGBA(x, y, Transparent)
			} else {
				dst.SetNRGBA(x, y, Black)
			}
		}
	}
	return dst, nil
}

// alpha returns the straight alpha of c in [0,1].
func alpha(c color.Color) float64 {
	return float64(color.NRGBAModel.Convert(c).(color.NRGBA).A) / 255
}
