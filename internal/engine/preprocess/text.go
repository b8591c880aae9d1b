package preprocess

import (
	"errors"
	"strings"
)

// ErrEmptyMessage is returned when a symptom message is empty after trimming.
var ErrEmptyMessage = errors.New("message must be a non-empty string")

// Text trims surrounding whitespace from a symptom message. This is the only
// validation the text pipeline performs — no length cap, no encoding
// normalization; anything further is the classifier's own tokenization
// contract.
func Text(message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", ErrEmptyMessage
	}
	return trimmed, nil
}
