package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/richinsley/revenant/graphics"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FromImageFile decodes the image at path and uploads it with FromImage.
func FromImageFile(dev graphics.Device, path string, cfg Config) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, encoding, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	t, err := FromImage(dev, img, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", path, encoding, err)
	}
	w, h := t.Size()
	log.Printf("Loaded %s texture %s (%dx%d %s)", cfg.Kind, path, w, h, encoding)
	return t, nil
}

// FromImage uploads a decoded 8-bit RGB image. Only images without an alpha
// channel are accepted: JPEG-style YCbCr, or RGBA whose every pixel is
// opaque (how truecolor PNGs decode). The image is flipped vertically so
// its first row lands at texture coordinate v=0.
func FromImage(dev graphics.Device, img image.Image, cfg Config) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrUnsupportedImageEncoding)
	}
	pixels, err := packRGB(img)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return Create(dev, pixels, b.Dx(), b.Dy(), RGB, cfg)
}

// packRGB returns tightly packed RGB rows, bottom row of img first.
func packRGB(img image.Image) ([]byte, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	out := make([]byte, 0, width*height*3)

	switch m := img.(type) {
	case *image.RGBA:
		if !m.Opaque() {
			return nil, fmt.Errorf("%w: image has transparent pixels", ErrUnsupportedImageEncoding)
		}
		for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
			row := m.Pix[m.PixOffset(b.Min.X, y):]
			for x := 0; x < width; x++ {
				out = append(out, row[x*4], row[x*4+1], row[x*4+2])
			}
		}
	case *image.YCbCr:
		for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
			for x := b.Min.X; x < b.Max.X; x++ {
				yi, ci := m.YOffset(x, y), m.COffset(x, y)
				r, g, bl := color.YCbCrToRGB(m.Y[yi], m.Cb[ci], m.Cr[ci])
				out = append(out, r, g, bl)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedImageEncoding, img)
	}
	return out, nil
}
