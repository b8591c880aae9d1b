package dermaai

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/preprocess"
)

const testModelDir = "../../models"

func skipWithoutModels(t *testing.T) {
	t.Helper()
	for _, name := range []string{"symptom_classifier.onnx", "vocab.txt", "skin_classifier.onnx"} {
		if _, err := os.Stat(filepath.Join(testModelDir, name)); os.IsNotExist(err) {
			t.Skip("ONNX models not available, skipping integration test")
		}
	}
}

func newTestTriage(t *testing.T, opts ...Option) *Triage {
	t.Helper()
	skipWithoutModels(t)

	tr, err := New(append([]Option{WithModelDir(testModelDir)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { tr.Close() })
	return tr
}

func checkAssessment(t *testing.T, a Assessment) {
	t.Helper()
	if a.Confidence < 0 || a.Confidence > 100 {
		t.Errorf("Confidence = %v, want within [0,100]", a.Confidence)
	}
	if rounded := math.Round(a.Confidence*100) / 100; rounded != a.Confidence {
		t.Errorf("Confidence = %v, want two decimal places", a.Confidence)
	}
	if a.Message == "" {
		t.Error("Message is empty")
	}
	if a.Confident && a.Condition == "" {
		t.Error("confident assessment without a condition name")
	}
	if !a.Confident && a.Condition != "" {
		t.Errorf("rejected assessment still names %q", a.Condition)
	}
}

func TestNewBadPathReturnsError(t *testing.T) {
	if _, err := New(WithModelDir("/nonexistent/path")); err == nil {
		t.Fatal("expected error for bad model path, got nil")
	}
}

func TestCheckSymptoms(t *testing.T) {
	tr := newTestTriage(t)

	a, err := tr.CheckSymptoms("red itchy circular rash spreading on my arm")
	if err != nil {
		t.Fatalf("CheckSymptoms() error: %v", err)
	}
	checkAssessment(t, a)
}

func TestCheckSymptomsEmpty(t *testing.T) {
	tr := newTestTriage(t)

	_, err := tr.CheckSymptoms("   ")
	if !errors.Is(err, preprocess.ErrEmptyMessage) {
		t.Errorf("error = %v, want ErrEmptyMessage", err)
	}
}

func TestCheckImage(t *testing.T) {
	tr := newTestTriage(t)

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 190, G: 130, B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	a, err := tr.CheckImage(buf.Bytes())
	if err != nil {
		t.Fatalf("CheckImage() error: %v", err)
	}
	checkAssessment(t, a)
}

func TestCheckImageInvalid(t *testing.T) {
	tr := newTestTriage(t)

	_, err := tr.CheckImage([]byte("not an image"))
	if !errors.Is(err, preprocess.ErrInvalidImage) {
		t.Errorf("error = %v, want ErrInvalidImage", err)
	}
}

func TestZeroThresholdAlwaysConfident(t *testing.T) {
	tr := newTestTriage(t, WithTextThreshold(0))

	a, err := tr.CheckSymptoms("unclear mild discomfort")
	if err != nil {
		t.Fatalf("CheckSymptoms() error: %v", err)
	}
	if !a.Confident {
		t.Errorf("threshold 0 should accept any prediction, got %+v", a)
	}
}

func TestConcurrentChecks(t *testing.T) {
	tr := newTestTriage(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := tr.CheckSymptoms("peeling skin between the toes"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent CheckSymptoms returned error: %v", err)
	}
}
