package engine

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/catalog"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/classifier"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/preprocess"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/responder"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/model"
)

// stubText returns fixed logits and counts invocations.
type stubText struct {
	logits []float32
	err    error
	calls  int
}

func (s *stubText) Score(text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.logits, nil
}

func (s *stubText) Close() error { return nil }

type stubImage struct {
	logits []float32
	err    error
	calls  int
}

func (s *stubImage) Score(t model.ImageTensor) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.logits, nil
}

func (s *stubImage) Close() error { return nil }

// logitsFor builds logits whose softmax reproduces the given probabilities:
// softmax(ln(p)) = p when the probabilities sum to one.
func logitsFor(probs []float64) []float32 {
	out := make([]float32, len(probs))
	for i, p := range probs {
		out[i] = float32(math.Log(p))
	}
	return out
}

// probsWithTop spreads 1-p evenly over all classes except top, which gets p.
func probsWithTop(n, top int, p float64) []float64 {
	rest := (1 - p) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = rest
	}
	out[top] = p
	return out
}

// testEngine wires an engine with deterministic responders (always the
// first template) and the default thresholds.
func testEngine(t *testing.T, text classifier.Text, img classifier.Image) *Engine {
	t.Helper()

	first := func(n int) int { return 0 }
	textResp, err := responder.New(responder.DefaultTextTemplates(), first)
	if err != nil {
		t.Fatalf("failed to create text responder: %v", err)
	}
	imageResp, err := responder.New(responder.DefaultImageTemplates(), first)
	if err != nil {
		t.Fatalf("failed to create image responder: %v", err)
	}

	return New(
		TextPipeline{
			Classifier: text,
			Catalog:    catalog.DefaultText(),
			Responder:  textResp,
			Threshold:  DefaultTextThreshold,
		},
		ImagePipeline{
			Classifier: img,
			Catalog:    catalog.DefaultImage(),
			Responder:  imageResp,
			Threshold:  DefaultImageThreshold,
		},
		nil,
	)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestClassifyTextConfident(t *testing.T) {
	// Class 6 at 83% is Psoriasis in the text catalog.
	stub := &stubText{logits: logitsFor(probsWithTop(15, 6, 0.83))}
	eng := testEngine(t, stub, &stubImage{})

	pred, err := eng.ClassifyText("itchy scaly patches on elbows")
	if err != nil {
		t.Fatalf("ClassifyText() error: %v", err)
	}

	if !pred.Confident {
		t.Error("expected a confident prediction")
	}
	if pred.Label != "Psoriasis" {
		t.Errorf("Label = %q, want Psoriasis", pred.Label)
	}
	if pred.Confidence != 83.0 {
		t.Errorf("Confidence = %v, want 83.0", pred.Confidence)
	}
	want := "It appears that you might be suffering from Psoriasis. Please consult a healthcare professional."
	if pred.Message != want {
		t.Errorf("Message = %q, want %q", pred.Message, want)
	}
}

func TestClassifyTextRejected(t *testing.T) {
	stub := &stubText{logits: logitsFor(probsWithTop(15, 3, 0.40))}
	eng := testEngine(t, stub, &stubImage{})

	pred, err := eng.ClassifyText("vague tingling")
	if err != nil {
		t.Fatalf("ClassifyText() error: %v", err)
	}

	if pred.Confident {
		t.Error("expected a rejected prediction")
	}
	if pred.Label != "" {
		t.Errorf("Label = %q, want empty on rejection", pred.Label)
	}
	if pred.Confidence != 40.0 {
		t.Errorf("Confidence = %v, want 40.0", pred.Confidence)
	}
	if pred.Message != DefaultTextRejection {
		t.Errorf("Message = %q, want the advisory", pred.Message)
	}
}

func TestClassifyTextThresholdBoundary(t *testing.T) {
	// Two equal logits make the top probability exactly 0.5, and exactly at
	// the threshold is accepted: the gate is >=, not >.
	stub := &stubText{logits: []float32{0, 0}}
	eng := testEngine(t, stub, &stubImage{})

	pred, err := eng.ClassifyText("borderline")
	if err != nil {
		t.Fatalf("ClassifyText() error: %v", err)
	}
	if !pred.Confident {
		t.Errorf("confidence %v at threshold should be accepted", pred.Confidence)
	}
	if pred.Confidence != 50.0 {
		t.Errorf("Confidence = %v, want 50.0", pred.Confidence)
	}
	// Ties resolve to the earliest class.
	if pred.Label != "Vitiligo" {
		t.Errorf("Label = %q, want Vitiligo", pred.Label)
	}
}

func TestClassifyTextEmptySkipsClassifier(t *testing.T) {
	stub := &stubText{logits: logitsFor(probsWithTop(15, 0, 0.9))}
	eng := testEngine(t, stub, &stubImage{})

	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := eng.ClassifyText(in)
		if !errors.Is(err, preprocess.ErrEmptyMessage) {
			t.Errorf("ClassifyText(%q) error = %v, want ErrEmptyMessage", in, err)
		}
	}
	if stub.calls != 0 {
		t.Errorf("classifier invoked %d times on invalid input, want 0", stub.calls)
	}
}

func TestClassifyTextUnknownDisease(t *testing.T) {
	// 16 classes from the model against a 15-entry catalog: the triage
	// still answers, naming the sentinel.
	stub := &stubText{logits: logitsFor(probsWithTop(16, 15, 0.9))}
	eng := testEngine(t, stub, &stubImage{})

	pred, err := eng.ClassifyText("something rare")
	if err != nil {
		t.Fatalf("ClassifyText() error: %v", err)
	}
	if pred.Label != catalog.Unknown {
		t.Errorf("Label = %q, want %q", pred.Label, catalog.Unknown)
	}
	want := "It appears that you might be suffering from Unknown Disease. Please consult a healthcare professional."
	if pred.Message != want {
		t.Errorf("Message = %q, want %q", pred.Message, want)
	}
}

func TestClassifyTextScoreError(t *testing.T) {
	stub := &stubText{err: errors.New("session exploded")}
	eng := testEngine(t, stub, &stubImage{})

	if _, err := eng.ClassifyText("anything"); err == nil {
		t.Error("expected classifier error to surface")
	}
}

func TestClassifyTextEmptyLogits(t *testing.T) {
	stub := &stubText{logits: []float32{}}
	eng := testEngine(t, stub, &stubImage{})

	if _, err := eng.ClassifyText("anything"); err == nil {
		t.Error("expected error for empty logits")
	}
}

func TestClassifyTextDeterministic(t *testing.T) {
	stub := &stubText{logits: logitsFor(probsWithTop(15, 2, 0.77))}
	eng := testEngine(t, stub, &stubImage{})

	first, err := eng.ClassifyText("recurring rash")
	if err != nil {
		t.Fatalf("ClassifyText() error: %v", err)
	}
	second, err := eng.ClassifyText("recurring rash")
	if err != nil {
		t.Fatalf("ClassifyText() error: %v", err)
	}
	if first != second {
		t.Errorf("same input diverged: %+v vs %+v", first, second)
	}
}

func TestConfidenceRounding(t *testing.T) {
	tests := []struct {
		top  float64
		want float64
	}{
		{0.83456, 83.46},
		{0.9999, 99.99},
		{0.701, 70.1},
	}
	for _, tt := range tests {
		stub := &stubText{logits: logitsFor(probsWithTop(15, 6, tt.top))}
		eng := testEngine(t, stub, &stubImage{})

		pred, err := eng.ClassifyText("check rounding")
		if err != nil {
			t.Fatalf("ClassifyText() error: %v", err)
		}
		if pred.Confidence != tt.want {
			t.Errorf("top %v: Confidence = %v, want %v", tt.top, pred.Confidence, tt.want)
		}
	}
}

func TestRejectionConfidenceRounded(t *testing.T) {
	stub := &stubText{logits: logitsFor(probsWithTop(15, 1, 1.0/3.0))}
	eng := testEngine(t, stub, &stubImage{})

	pred, err := eng.ClassifyText("unclear")
	if err != nil {
		t.Fatalf("ClassifyText() error: %v", err)
	}
	if pred.Confident {
		t.Error("expected rejection")
	}
	if pred.Confidence != 33.33 {
		t.Errorf("Confidence = %v, want 33.33", pred.Confidence)
	}
}

func TestClassifyImageConfident(t *testing.T) {
	// Class 8 at 88% is Psoriasis in the image catalog.
	stub := &stubImage{logits: logitsFor(probsWithTop(15, 8, 0.88))}
	eng := testEngine(t, &stubText{}, stub)

	pred, err := eng.ClassifyImage(pngBytes(t))
	if err != nil {
		t.Fatalf("ClassifyImage() error: %v", err)
	}

	if !pred.Confident {
		t.Error("expected a confident prediction")
	}
	if pred.Label != "Psoriasis" {
		t.Errorf("Label = %q, want Psoriasis", pred.Label)
	}
	if pred.Confidence != 88.0 {
		t.Errorf("Confidence = %v, want 88.0", pred.Confidence)
	}
	want := "This image most likely shows signs of Psoriasis. Professional diagnosis is advised."
	if pred.Message != want {
		t.Errorf("Message = %q, want %q", pred.Message, want)
	}
}

func TestClassifyImageRejected(t *testing.T) {
	// 69% clears the text gate but not the stricter image gate.
	stub := &stubImage{logits: logitsFor(probsWithTop(15, 4, 0.69))}
	eng := testEngine(t, &stubText{}, stub)

	pred, err := eng.ClassifyImage(pngBytes(t))
	if err != nil {
		t.Fatalf("ClassifyImage() error: %v", err)
	}
	if pred.Confident {
		t.Error("expected a rejected prediction")
	}
	if pred.Confidence != 69.0 {
		t.Errorf("Confidence = %v, want 69.0", pred.Confidence)
	}
	if pred.Message != DefaultImageRejection {
		t.Errorf("Message = %q, want the advisory", pred.Message)
	}
}

func TestClassifyImageInvalidSkipsClassifier(t *testing.T) {
	stub := &stubImage{logits: logitsFor(probsWithTop(15, 0, 0.9))}
	eng := testEngine(t, &stubText{}, stub)

	_, err := eng.ClassifyImage([]byte("not an image"))
	if !errors.Is(err, preprocess.ErrInvalidImage) {
		t.Errorf("error = %v, want ErrInvalidImage", err)
	}
	if stub.calls != 0 {
		t.Errorf("classifier invoked %d times on invalid input, want 0", stub.calls)
	}
}

func TestPipelineThresholdsIndependent(t *testing.T) {
	// The same 60% confidence passes the text pipeline and fails the image
	// pipeline under the default thresholds.
	textStub := &stubText{logits: logitsFor(probsWithTop(15, 2, 0.6))}
	imageStub := &stubImage{logits: logitsFor(probsWithTop(15, 2, 0.6))}
	eng := testEngine(t, textStub, imageStub)

	textPred, err := eng.ClassifyText("some symptoms")
	if err != nil {
		t.Fatalf("ClassifyText() error: %v", err)
	}
	imagePred, err := eng.ClassifyImage(pngBytes(t))
	if err != nil {
		t.Fatalf("ClassifyImage() error: %v", err)
	}

	if !textPred.Confident {
		t.Error("60%% should pass the text gate")
	}
	if imagePred.Confident {
		t.Error("60%% should fail the image gate")
	}
}
