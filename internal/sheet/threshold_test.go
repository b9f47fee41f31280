package sheet

import (
	"image"
	"image/color"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient has an alpha ramp from 0 to 255 along x, with varying colors.
func gradient() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 256; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(80 * y), B: 255, A: uint8(x)})
		}
	}
	return img
}

func binaryAt(t *testing.T, img image.Image, x, y int) color.NRGBA {
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	if c != Black && c != Transparent {
		t.Fatalf("pixel (%d,%d) is %v, neither black nor transparent", x, y, c)
	}
	return c
}

func TestBinarizeDefaultThreshold(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	src := gradient()
	out := Binarize(src, DefaultThreshold)
	require.Equal(t, src.Bounds(), out.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 256; x++ {
			if float64(x)/255 < 0.5 {
				assert.Equal(t, Transparent, binaryAt(t, out, x, y))
			} else {
				assert.Equal(t, Black, binaryAt(t, out, x, y))
			}
		}
	}
	assert.Equal(t, Transparent, binaryAt(t, out, 127, 0))
	assert.Equal(t, Black, binaryAt(t, out, 128, 0))
}

func TestBinarizeExtremes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	src := gradient()
	all := Binarize(src, 0.0)
	for x := 0; x < 256; x++ {
		assert.Equal(t, Black, binaryAt(t, all, x, 1), "threshold 0 makes every pixel solid")
	}
	opaqueOnly := Binarize(src, 1.0)
	for x := 0; x < 255; x++ {
		assert.Equal(t, Transparent, binaryAt(t, opaqueOnly, x, 2))
	}
	assert.Equal(t, Black, binaryAt(t, opaqueOnly, 255, 2))
}

func TestBinarizeOutOfRangeThreshold(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	src := gradient()
	assert.Equal(t, Black, binaryAt(t, Binarize(src, -3), 0, 0))
	assert.Equal(t, Transparent, binaryAt(t, Binarize(src, 1.5), 255, 0))
}

func TestBinarizeKeepsOffsetBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	src := image.NewRGBA(image.Rect(5, 7, 9, 10))
	src.Set(6, 8, color.RGBA{R: 40, G: 40, B: 40, A: 200}) // premultiplied
	out := Binarize(src, 0.75)
	assert.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, Black, binaryAt(t, out, 6, 8))
	assert.Equal(t, Transparent, binaryAt(t, out, 5, 7))
}

func TestBinarizeDegradesGracefully(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 4))
	assert.Same(t, empty, Binarize(empty, 0.5))
	assert.Nil(t, Binarize(nil, 0.5))
}
