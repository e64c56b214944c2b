package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/dariandzirko/water-spider/assets"
	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestImageLoaderDecodePNG(t *testing.T) {
	staging, err := ImageLoader{}.Decode(encodePNG(t, checker(3, 2)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if staging.Width != 3 || staging.Height != 2 {
		t.Fatalf("size = %dx%d, want 3x2", staging.Width, staging.Height)
	}
	if len(staging.Pixels) != 3*2*4 {
		t.Fatalf("pixel bytes = %d, want 24", len(staging.Pixels))
	}
	if got := staging.Pixels[0:4]; !bytes.Equal(got, []byte{255, 0, 0, 255}) {
		t.Errorf("pixel (0,0) = %v, want red", got)
	}
	if got := staging.Pixels[4:8]; !bytes.Equal(got, []byte{0, 0, 255, 255}) {
		t.Errorf("pixel (1,0) = %v, want blue", got)
	}
	if staging.BytesPerRow() != 12 {
		t.Errorf("BytesPerRow = %d, want 12", staging.BytesPerRow())
	}
}

func TestImageLoaderDecodePaletted(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	img.SetColorIndex(1, 1, 1)
	staging, err := ImageLoader{}.Decode(encodePNG(t, img))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	last := staging.Pixels[len(staging.Pixels)-4:]
	if !bytes.Equal(last, []byte{255, 255, 255, 255}) {
		t.Errorf("pixel (1,1) = %v, want white", last)
	}
	if !bytes.Equal(staging.Pixels[0:4], []byte{0, 0, 0, 255}) {
		t.Errorf("pixel (0,0) = %v, want black", staging.Pixels[0:4])
	}
}

func TestImageLoaderDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, checker(4, 4)); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}
	staging, err := ImageLoader{}.Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if staging.Width != 4 || staging.Height != 4 || len(staging.Pixels) != 64 {
		t.Errorf("staging = %dx%d with %d bytes", staging.Width, staging.Height, len(staging.Pixels))
	}
}

func TestImageLoaderDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		encoded []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"garbage", []byte("definitely not an image")},
		{"truncated png", []byte("\x89PNG\r\n\x1a\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (ImageLoader{}).Decode(tt.encoded); !errors.Is(err, ErrDecode) {
				t.Errorf("err = %v, want ErrDecode", err)
			}
		})
	}
}

func TestImageLoaderDecodeAssets(t *testing.T) {
	for name, encoded := range map[string][]byte{
		"background": assets.Background,
		"water":      assets.WaterNormal,
	} {
		staging, err := ImageLoader{}.Decode(encoded)
		if err != nil {
			t.Errorf("%s: Decode: %v", name, err)
			continue
		}
		if staging.Width == 0 || staging.Height == 0 || len(staging.Pixels) != int(staging.BytesPerRow()*staging.Height) {
			t.Errorf("%s: inconsistent staging %dx%d with %d bytes", name, staging.Width, staging.Height, len(staging.Pixels))
		}
	}
}
