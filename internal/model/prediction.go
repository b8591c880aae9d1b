package model

// Prediction is the outcome of one triage pipeline run — the engine's output type.
type Prediction struct {
	Class      int     // ordinal id emitted by the classifier
	Label      string  // resolved disease name; empty when the gate rejected
	Confidence float64 // top softmax probability as a percentage, rounded to 2 decimals
	Confident  bool    // whether the confidence cleared the pipeline threshold
	Message    string  // user-facing sentence (composed template or fixed advisory)
}
