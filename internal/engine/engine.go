package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/catalog"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/classifier"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/preprocess"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/responder"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/model"
)

// Advisory messages returned when a pipeline's confidence gate rejects.
const (
	DefaultTextRejection  = "Sorry, I'm not confident enough to make a diagnosis based on your symptoms."
	DefaultImageRejection = "I'm not confident enough to classify this image as a known disease."
)

// DefaultTextThreshold and DefaultImageThreshold are the minimum confidence
// percentages a prediction must reach to be reported as a diagnosis.
const (
	DefaultTextThreshold  = 50.0
	DefaultImageThreshold = 70.0
)

// TextPipeline wires the components of the symptom triage path.
type TextPipeline struct {
	Classifier classifier.Text
	Catalog    *catalog.Catalog
	Responder  *responder.Responder
	Threshold  float64
	Rejection  string
}

// ImagePipeline wires the components of the photo triage path.
type ImagePipeline struct {
	Classifier classifier.Image
	Catalog    *catalog.Catalog
	Responder  *responder.Responder
	Threshold  float64
	Rejection  string
}

// Engine runs the two triage pipelines: validate, classify, gate on
// confidence, then either compose a diagnosis or return the pipeline's
// advisory. Safe for concurrent use as long as its components are.
type Engine struct {
	text  TextPipeline
	image ImagePipeline
	log   *zap.Logger
}

// New creates an Engine. Empty rejection messages fall back to the package
// defaults; a nil logger disables engine logging.
func New(text TextPipeline, image ImagePipeline, log *zap.Logger) *Engine {
	if text.Rejection == "" {
		text.Rejection = DefaultTextRejection
	}
	if image.Rejection == "" {
		image.Rejection = DefaultImageRejection
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{text: text, image: image, log: log}
}

// ClassifyText triages a free-text symptom description.
func (e *Engine) ClassifyText(message string) (model.Prediction, error) {
	cleaned, err := preprocess.Text(message)
	if err != nil {
		return model.Prediction{}, err
	}

	logits, err := e.text.Classifier.Score(cleaned)
	if err != nil {
		return model.Prediction{}, fmt.Errorf("engine: score text: %w", err)
	}

	pred, err := decide(logits, e.text.Threshold, e.text.Rejection, e.text.Catalog, e.text.Responder)
	if err != nil {
		return model.Prediction{}, err
	}
	e.log.Debug("text classified",
		zap.Int("class", pred.Class),
		zap.Float64("confidence", pred.Confidence),
		zap.Bool("confident", pred.Confident))
	return pred, nil
}

// ClassifyImage triages a raw uploaded photo.
func (e *Engine) ClassifyImage(data []byte) (model.Prediction, error) {
	tensor, err := preprocess.Image(data)
	if err != nil {
		return model.Prediction{}, err
	}

	logits, err := e.image.Classifier.Score(tensor)
	if err != nil {
		return model.Prediction{}, fmt.Errorf("engine: score image: %w", err)
	}

	pred, err := decide(logits, e.image.Threshold, e.image.Rejection, e.image.Catalog, e.image.Responder)
	if err != nil {
		return model.Prediction{}, err
	}
	e.log.Debug("image classified",
		zap.Int("class", pred.Class),
		zap.Float64("confidence", pred.Confidence),
		zap.Bool("confident", pred.Confident))
	return pred, nil
}

// decide turns raw logits into the final prediction: softmax, argmax,
// confidence gate, then name resolution and template composition for
// accepted predictions. Confidence is rounded to two decimals in both
// branches.
func decide(logits []float32, threshold float64, rejection string, cat *catalog.Catalog, rsp *responder.Responder) (model.Prediction, error) {
	if len(logits) == 0 {
		return model.Prediction{}, errors.New("engine: classifier returned no scores")
	}

	probs := softmax(logits)
	class := argmax(probs)
	confidence := probs[class] * 100

	if confidence < threshold {
		return model.Prediction{
			Class:      class,
			Confidence: round2(confidence),
			Message:    rejection,
		}, nil
	}

	label := cat.Resolve(class)
	return model.Prediction{
		Class:      class,
		Label:      label,
		Confidence: round2(confidence),
		Confident:  true,
		Message:    rsp.Compose(label),
	}, nil
}
