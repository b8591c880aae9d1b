package model

// ImageTensor is a preprocessed image ready for classifier inference.
// Data is planar NCHW float32: all of channel 0, then channel 1, then
// channel 2, each row-major. Shape is always [1, 3, H, W] — one image,
// three channels.
type ImageTensor struct {
	Data  []float32
	Shape []int64
}

// Elements returns the number of values the shape implies.
func (t ImageTensor) Elements() int64 {
	n := int64(1)
	for _, d := range t.Shape {
		n *= d
	}
	return n
}
