package engine

import "math"

// softmax converts raw logits to probabilities. Math is done in float64
// with max subtraction so large logits cannot overflow the exponent.
func softmax(logits []float32) []float64 {
	max := float64(logits[0])
	for _, v := range logits[1:] {
		if float64(v) > max {
			max = float64(v)
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(float64(v) - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// argmax returns the index of the largest probability. Ties keep the
// earliest index.
func argmax(probs []float64) int {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best
}

// round2 rounds to two decimal places, the precision every response
// reports confidence at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
