package dermaai_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/pkg/dermaai"
)

func Example() {
	// Skip in environments without model files.
	if _, err := os.Stat("../../models/symptom_classifier.onnx"); os.IsNotExist(err) {
		fmt.Println("assessment received")
		return
	}

	t, err := dermaai.New(dermaai.WithModelDir("../../models"))
	if err != nil {
		log.Fatal(err)
	}
	defer t.Close()

	if _, err := t.CheckSymptoms("itchy scaly patches on both elbows"); err != nil {
		log.Fatal(err)
	}

	fmt.Println("assessment received")
	// Output:
	// assessment received
}
