package classifier

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXText scores symptom descriptions with an exported transformer
// classifier. The model must accept input_ids and attention_mask; when it
// also declares token_type_ids a zero tensor is supplied. Safe for
// concurrent use: every Score call builds its own tensors.
type ONNXText struct {
	session      *ort.DynamicAdvancedSession
	tok          *tokenizer
	labels       int64
	inputNames   []string
	wantsTypeIDs bool
}

// NewONNXText loads a text classification model and its WordPiece
// vocabulary. The ONNX Runtime shared library is resolved next to the model
// file unless overridden via ONNXRUNTIME_SHARED_LIBRARY_PATH.
func NewONNXText(modelPath, vocabPath string) (*ONNXText, error) {
	if err := initORT(runtimeLibFor(modelPath)); err != nil {
		return nil, err
	}

	tok, err := newTokenizer(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: load vocabulary: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: inspect model %s: %w", modelPath, err)
	}

	declared := make(map[string]bool, len(inputs))
	inputNames := make([]string, 0, len(inputs))
	for _, in := range inputs {
		declared[in.Name] = true
		inputNames = append(inputNames, in.Name)
	}
	for _, required := range []string{"input_ids", "attention_mask"} {
		if !declared[required] {
			return nil, fmt.Errorf("onnx: model %s lacks required input %q", modelPath, required)
		}
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
	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, opts)
	if err != nil {
		return nil, fmt.Errorf("onnx: create session: %w", err)
	}

	return &ONNXText{
		session:      session,
		tok:          tok,
		labels:       labels,
		inputNames:   inputNames,
		wantsTypeIDs: declared["token_type_ids"],
	}, nil
}

// Score tokenizes the message and returns the raw per-class logits.
func (c *ONNXText) Score(text string) ([]float32, error) {
	ids, mask := c.tok.encode(text)
	shape := ort.NewShape(1, int64(len(ids)))

	idTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("onnx: create input_ids tensor: %w", err)
	}
	defer idTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, fmt.Errorf("onnx: create attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	byName := map[string]ort.Value{
		"input_ids":      idTensor,
		"attention_mask": maskTensor,
	}
	if c.wantsTypeIDs {
		typeTensor, err := ort.NewTensor(shape, make([]int64, len(ids)))
		if err != nil {
			return nil, fmt.Errorf("onnx: create token_type_ids tensor: %w", err)
		}
		defer typeTensor.Destroy()
		byName["token_type_ids"] = typeTensor
	}

	inputs := make([]ort.Value, len(c.inputNames))
	for i, name := range c.inputNames {
		v, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("onnx: no tensor for model input %q", name)
		}
		inputs[i] = v
	}

	outputs := []ort.Value{nil}
	if err := c.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("onnx: run text model: %w", err)
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
func (c *ONNXText) Close() error {
	if c.session == nil {
		return nil
	}
	err := c.session.Destroy()
	c.session = nil
	return err
}
