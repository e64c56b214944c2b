package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/dariandzirko/water-spider/common"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when encoded image bytes are empty or cannot be decoded.
var ErrDecode = errors.New("texture decode failed")

// Loader turns encoded image bytes into RGBA8 pixels ready for GPU upload.
type Loader interface {
	// Decode decodes an encoded image.
	//
	// Parameters:
	//   - encoded: the encoded image file contents
	//
	// Returns:
	//   - common.TextureStagingData: tightly packed RGBA8 rows, top row first
	//   - error: ErrDecode (wrapped) if the bytes are empty or not a supported image
	Decode(encoded []byte) (common.TextureStagingData, error)
}

// ImageLoader decodes PNG, JPEG, WebP and BMP images through the image package registry.
// The zero value is ready to use.
type ImageLoader struct{}

var _ Loader = ImageLoader{}

func (ImageLoader) Decode(encoded []byte) (common.TextureStagingData, error) {
	if len(encoded) == 0 {
		return common.TextureStagingData{}, fmt.Errorf("%w: empty input", ErrDecode)
	}

	img, format, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return common.TextureStagingData{}, fmt.Errorf("%w: %s image has no pixels", ErrDecode, format)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
