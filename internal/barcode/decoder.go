// Package barcode extracts barcode payloads from photos using gozxing.
package barcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MaxPixels caps the decoded image area. Headers are checked before any
// pixel buffer is allocated.
const MaxPixels = 40_000_000

var (
	ErrNotFound        = errors.New("no barcode found in image")
	ErrUnreadableImage = errors.New("image could not be decoded")
)

// Decoder returns the first barcode found in an image
type Decoder interface {
	Decode(data []byte) (string, error)
}

type zxingDecoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

func NewDecoder() Decoder {
	return &zxingDecoder{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// readers are stateful, so each call builds its own set.
// Retail symbologies first; QR last since it is the slowest.
func newReaders() []gozxing.Reader {
	return []gozxing.Reader{
		oned.NewMultiFormatUPCEANReader(nil),
		oned.NewCode128Reader(),
		oned.NewCode39Reader(),
		qrcode.NewQRCodeReader(),
	}
}

func (d *zxingDecoder) Decode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrUnreadableImage)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUnreadableImage, cfg.Width, cfg.Height, MaxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}

	for _, reader := range newReaders() {
		result, err := reader.Decode(bmp, d.hints)
		if err == nil {
			return result.GetText(), nil
		}
	}
	return "", ErrNotFound
}
