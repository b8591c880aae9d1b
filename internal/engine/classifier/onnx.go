package classifier

import (
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Safe to call multiple
// times; only the first call has any effect, so whichever classifier loads
// first wins and the second reuses the environment.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// runtimeLibFor resolves the ONNX Runtime shared library path. We ship it
// alongside the model files, so both classifiers resolve the same copy.
func runtimeLibFor(modelPath string) string {
	return filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
}

// newSessionOptions builds the session options both classifiers share.
// Callers must Destroy the result.
func newSessionOptions() (*ort.SessionOptions, error) {
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	opts.SetIntraOpNumThreads(4)
	opts.SetInterOpNumThreads(1)
	return opts, nil
}

// labelCount validates that a model output is a 2-D logits tensor
// [batch, labels] with a static label dimension, and returns that dimension.
// The label count is NOT cross-checked against the catalogs — out-of-range
// ordinals resolve to the unknown-disease sentinel downstream instead.
func labelCount(outputs []ort.InputOutputInfo) (int64, error) {
	if len(outputs) == 0 {
		return 0, fmt.Errorf("onnx: model has no outputs")
	}
	dims := outputs[0].Dimensions
	if len(dims) != 2 {
		return 0, fmt.Errorf("onnx: expected 2D logits output, got %v", dims)
	}
	if dims[1] <= 0 {
		return 0, fmt.Errorf("onnx: label dimension must be static, got %v", dims)
	}
	return dims[1], nil
}
