package classifier

import "github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/model"

// Text scores a symptom description against the text label space.
// Implementations own their tokenization contract; callers pass the trimmed
// message as-is. The returned slice holds one raw logit per ordinal class.
type Text interface {
	Score(text string) ([]float32, error)
	Close() error
}

// Image scores a preprocessed lesion image against the image label space.
// The tensor must already carry the [1, 3, 224, 224] layout produced by
// preprocessing; implementations do not re-validate pixel content.
type Image interface {
	Score(t model.ImageTensor) ([]float32, error)
	Close() error
}
