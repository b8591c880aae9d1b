package preprocess

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"

	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/model"
)

// ErrInvalidImage is returned when the payload does not decode to an image.
var ErrInvalidImage = errors.New("invalid image format")

// TargetSize is the spatial resolution the image classifier was trained at.
const TargetSize = 224

// Per-channel normalization constants matching the classifier's training
// pipeline. The [0,1]-scaled RGB values are shifted and scaled with these
// before inference; drifting from them silently degrades model output.
var (
	imageMean = [3]float32{0.485, 0.456, 0.406}
	imageStd  = [3]float32{0.229, 0.224, 0.225}
)

// Image decodes raw bytes and converts them into the classifier's input
// tensor: decode (JPEG, PNG, or GIF) → force RGB → resize to 224×224
// regardless of aspect ratio (distortion is accepted, not corrected) →
// scale channels to [0,1] → per-channel mean/std normalization → batch of
// one. The result always has shape [1, 3, 224, 224].
func Image(data []byte) (model.ImageTensor, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return model.ImageTensor{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	resized := resize.Resize(TargetSize, TargetSize, img, resize.Bilinear)

	// Planar NCHW layout: one full 224×224 plane per channel.
	const plane = TargetSize * TargetSize
	out := make([]float32, 3*plane)

	bounds := resized.Bounds()
	for y := 0; y < TargetSize; y++ {
		for x := 0; x < TargetSize; x++ {
			// RGBA() collapses any source color model (grayscale, paletted,
			// alpha-carrying) into 16-bit RGB.
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			idx := y*TargetSize + x
			out[idx] = (float32(r)/65535.0 - imageMean[0]) / imageStd[0]
			out[plane+idx] = (float32(g)/65535.0 - imageMean[1]) / imageStd[1]
			out[2*plane+idx] = (float32(b)/65535.0 - imageMean[2]) / imageStd[2]
		}
	}

	return model.ImageTensor{
		Data:  out,
		Shape: []int64{1, 3, TargetSize, TargetSize},
	}, nil
}
