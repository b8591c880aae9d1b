package dermaai

import (
	"errors"
	"fmt"

	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/catalog"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/classifier"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/responder"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/model"
)

// Triage is a skin condition triage engine covering two inputs: free-text
// symptom descriptions and skin photos. Safe for concurrent use.
type Triage struct {
	engine   *engine.Engine
	textCls  *classifier.ONNXText
	imageCls *classifier.ONNXImage
}

// Assessment is the outcome of one triage run.
type Assessment struct {
	Condition  string  // resolved disease name; empty below the threshold
	Message    string  // user-facing recommendation
	Confidence float64 // percent, rounded to two decimals
	Confident  bool    // whether the confidence cleared the threshold
}

// New creates a Triage instance, loading both ONNX models. This is an
// expensive operation — create once, reuse across requests.
func New(opts ...Option) (*Triage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	textModel, textVocab, imageModel := resolvePaths(o)

	textCls, err := classifier.NewONNXText(textModel, textVocab)
	if err != nil {
		return nil, fmt.Errorf("dermaai: %w", err)
	}
	imageCls, err := classifier.NewONNXImage(imageModel)
	if err != nil {
		textCls.Close()
		return nil, fmt.Errorf("dermaai: %w", err)
	}

	textResp, err := responder.New(responder.DefaultTextTemplates(), nil)
	if err != nil {
		textCls.Close()
		imageCls.Close()
		return nil, fmt.Errorf("dermaai: %w", err)
	}
	imageResp, err := responder.New(responder.DefaultImageTemplates(), nil)
	if err != nil {
		textCls.Close()
		imageCls.Close()
		return nil, fmt.Errorf("dermaai: %w", err)
	}

	eng := engine.New(
		engine.TextPipeline{
			Classifier: textCls,
			Catalog:    catalog.DefaultText(),
			Responder:  textResp,
			Threshold:  o.textThreshold,
		},
		engine.ImagePipeline{
			Classifier: imageCls,
			Catalog:    catalog.DefaultImage(),
			Responder:  imageResp,
			Threshold:  o.imageThreshold,
		},
		o.logger,
	)

	return &Triage{engine: eng, textCls: textCls, imageCls: imageCls}, nil
}

// CheckSymptoms triages a free-text symptom description.
func (t *Triage) CheckSymptoms(message string) (Assessment, error) {
	pred, err := t.engine.ClassifyText(message)
	if err != nil {
		return Assessment{}, err
	}
	return assessmentFrom(pred), nil
}

// CheckImage triages an encoded skin photo (JPEG, PNG or GIF bytes).
func (t *Triage) CheckImage(data []byte) (Assessment, error) {
	pred, err := t.engine.ClassifyImage(data)
	if err != nil {
		return Assessment{}, err
	}
	return assessmentFrom(pred), nil
}

// Close releases both model sessions. Must be called when the Triage
// instance is no longer needed.
func (t *Triage) Close() error {
	return errors.Join(t.textCls.Close(), t.imageCls.Close())
}

func assessmentFrom(p model.Prediction) Assessment {
	return Assessment{
		Condition:  p.Label,
		Message:    p.Message,
		Confidence: p.Confidence,
		Confident:  p.Confident,
	}
}
