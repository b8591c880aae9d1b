// Package dermaai provides a skin condition triage engine that scores
// free-text symptom descriptions and skin photos against two 15-condition
// classifiers.
//
// Quick start:
//
//	t, err := dermaai.New(dermaai.WithModelDir("models/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Close()
//
//	a, _ := t.CheckSymptoms("itchy red patches on both elbows")
//	fmt.Println(a.Condition, a.Confidence) // Psoriasis 83.0
//
// Assessments below the confidence threshold come back with Confident set
// to false and an advisory message instead of a diagnosis.
//
// The Triage instance is safe for concurrent use. Create once, reuse
// across requests.
package dermaai
