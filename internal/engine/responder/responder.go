package responder

import (
	"fmt"
	"math/rand"
)

// Picker selects an index in [0, n). The default is uniform random, which
// varies surface phrasing across otherwise identical predictions; tests
// inject a deterministic one.
type Picker func(n int) int

// Responder composes a user-facing sentence from a fixed template pool.
// Each template carries exactly one %s for the resolved disease name.
// Selection is stateless and may repeat across calls.
type Responder struct {
	templates []string
	pick      Picker
}

// New creates a Responder over the given pool. A nil picker defaults to
// uniform random selection.
func New(templates []string, pick Picker) (*Responder, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("responder: empty template pool")
	}
	if pick == nil {
		pick = rand.Intn
	}
	return &Responder{templates: templates, pick: pick}, nil
}

// Compose interpolates the label into one template from the pool.
func (r *Responder) Compose(label string) string {
	return fmt.Sprintf(r.templates[r.pick(len(r.templates))], label)
}

// Size returns the number of templates in the pool.
func (r *Responder) Size() int {
	return len(r.templates)
}
