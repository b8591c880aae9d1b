package classifier

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/model"
)

// ONNXImage scores preprocessed skin photos with an exported convolutional
// classifier. The model must take a single float32 input and emit one
// [batch, labels] logit row. Safe for concurrent use.
type ONNXImage struct {
	session   *ort.DynamicAdvancedSession
	labels    int64
	inputName string
}

// NewONNXImage loads an image classification model from modelPath.
func NewONNXImage(modelPath string) (*ONNXImage, error) {
	if err := initORT(runtimeLibFor(modelPath)); err != nil {
		return nil, err
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: inspect model %s: %w", modelPath, err)
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("onnx: model %s declares %d inputs, want 1", modelPath, len(inputs))
	}
	if got := len(inputs[0].Dimensions); got != 4 {
		return nil, fmt.Errorf("onnx: model %s input is %dD, want 4D NCHW", modelPath, got)
	}

	labels, err := labelCount(outputs)
	if err != nil {
		return nil, fmt.Errorf("onnx: model %s: %w", modelPath, err)
	}

	opts, err := newSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: session options: %w", err)
	}
	defer opts.Destroy()

	outputNames := make([]string, len(outputs))
	for i, out := range outputs {
		outputNames[i] = out.Name
	}
	session, err := ort.NewDynamicAdvancedSession(
		modelPath, []string{inputs[0].Name}, outputNames, opts)
	if err != nil {
		return nil, fmt.Errorf("onnx: create session: %w", err)
	}

	return &ONNXImage{
		session:   session,
		labels:    labels,
		inputName: inputs[0].Name,
	}, nil
}

// Score runs the model over one normalized image tensor and returns the raw
// per-class logits.
func (c *ONNXImage) Score(t model.ImageTensor) ([]float32, error) {
	if want, got := t.Elements(), int64(len(t.Data)); want != got {
		return nil, fmt.Errorf("onnx: tensor holds %d values, shape needs %d", got, want)
	}

	input, err := ort.NewTensor(ort.NewShape(t.Shape...), t.Data)
	if err != nil {
		return nil, fmt.Errorf("onnx: create image tensor: %w", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := c.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("onnx: run image model: %w", err)
	}
	defer outputs[0].Destroy()

	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("onnx: unexpected output type %T", outputs[0])
	}
	scores := make([]float32, c.labels)
	copy(scores, logits.GetData())
	return scores, nil
}

// Close releases the underlying session.
func (c *ONNXImage) Close() error {
	if c.session == nil {
		return nil
	}
	err := c.session.Destroy()
	c.session = nil
	return err
}
