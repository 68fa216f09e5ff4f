package canvas

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"

	"github.com/matzehuels/brandkit/pkg/errors"
)

// EncodePNG encodes img as PNG. With optimize set the encoder uses its best
// lossless compression; otherwise the default level.
func EncodePNG(img image.Image, optimize bool) ([]byte, error) {
	level := png.DefaultCompression
	if optimize {
		level = png.BestCompression
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(level)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// EncodeICO packs imgs into one ICO container, one directory entry per
// image, in the order given. Every image must be at most 256 pixels on a
// side.
func EncodeICO(imgs ...image.Image) ([]byte, error) {
	if len(imgs) == 0 {
		return nil, errors.New(errors.ErrCodeEncodeFailed, "encode ico: no images")
	}
	for _, img := range imgs {
		b := img.Bounds()
		if b.Dx() < 1 || b.Dy() < 1 || b.Dx() > 256 || b.Dy() > 256 {
			return nil, errors.New(errors.ErrCodeEncodeFailed, "encode ico: %dx%d image out of range", b.Dx(), b.Dy())
		}
	}
	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, imgs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode ico")
	}
	return buf.Bytes(), nil
}

// DecodeICO returns the images stored in an ICO container.
func DecodeICO(data []byte) ([]image.Image, error) {
	imgs, err := ico.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode ico")
	}
	return imgs, nil
}
