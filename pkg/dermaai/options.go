package dermaai

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine"
)

type options struct {
	modelDir       string
	textModelPath  string
	textVocabPath  string
	imageModelPath string
	textThreshold  float64
	imageThreshold float64
	logger         *zap.Logger
}

// Option configures a Triage instance.
type Option func(*options)

// WithModelDir sets the directory containing the model files.
// Expects: symptom_classifier.onnx, vocab.txt, skin_classifier.onnx.
func WithModelDir(dir string) Option {
	return func(o *options) {
		o.modelDir = dir
	}
}

// WithTextModel sets explicit paths for the symptom classifier and its
// WordPiece vocabulary. Takes precedence over WithModelDir.
func WithTextModel(model, vocab string) Option {
	return func(o *options) {
		o.textModelPath = model
		o.textVocabPath = vocab
	}
}

// WithImageModel sets an explicit path for the skin image classifier.
// Takes precedence over WithModelDir.
func WithImageModel(model string) Option {
	return func(o *options) {
		o.imageModelPath = model
	}
}

// WithTextThreshold sets the minimum confidence percentage for a symptom
// diagnosis. Below it the advisory message is returned. Default: 50.
func WithTextThreshold(t float64) Option {
	return func(o *options) {
		o.textThreshold = t
	}
}

// WithImageThreshold sets the minimum confidence percentage for an image
// diagnosis. Default: 70.
func WithImageThreshold(t float64) Option {
	return func(o *options) {
		o.imageThreshold = t
	}
}

// WithLogger routes engine logs to the given logger. Default: discard.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		textThreshold:  engine.DefaultTextThreshold,
		imageThreshold: engine.DefaultImageThreshold,
	}
}

// resolvePaths determines the model file paths from the configured options.
// Explicit paths take precedence over modelDir.
func resolvePaths(o options) (textModel, textVocab, imageModel string) {
	dir := o.modelDir
	if dir == "" {
		dir = "models"
	}
	textModel = o.textModelPath
	if textModel == "" {
		textModel = filepath.Join(dir, "symptom_classifier.onnx")
	}
	textVocab = o.textVocabPath
	if textVocab == "" {
		textVocab = filepath.Join(dir, "vocab.txt")
	}
	imageModel = o.imageModelPath
	if imageModel == "" {
		imageModel = filepath.Join(dir, "skin_classifier.onnx")
	}
	return textModel, textVocab, imageModel
}
