package classifier

import (
	"bufio"
	"fmt"
	"os"
)

// vocab holds a WordPiece vocabulary loaded from a vocab.txt file, where the
// 0-indexed line number of each token is its id. Only the token→id direction
// is kept; a classifier never maps ids back to text.
type vocab struct {
	ids   map[string]int64
	count int

	unkID int64
	clsID int64
	sepID int64
}

// loadVocab reads the vocabulary file and resolves the special tokens the
// tokenizer frames sequences with.
func loadVocab(path string) (*vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: %w", err)
	}
	defer f.Close()

	v := &vocab{ids: make(map[string]int64, 32000)}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		v.ids[scanner.Text()] = int64(v.count)
		v.count++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("vocab: read error: %w", err)
	}
	if v.count == 0 {
		return nil, fmt.Errorf("vocab: file is empty: %s", path)
	}

	for _, s := range []struct {
		name string
		dest *int64
	}{
		{"[UNK]", &v.unkID},
		{"[CLS]", &v.clsID},
		{"[SEP]", &v.sepID},
	} {
		id, ok := v.ids[s.name]
		if !ok {
			return nil, fmt.Errorf("vocab: missing special token %s", s.name)
		}
		*s.dest = id
	}

	return v, nil
}

// lookup returns the id for the given token, or the [UNK] id if absent.
func (v *vocab) lookup(token string) int64 {
	if id, ok := v.ids[token]; ok {
		return id
	}
	return v.unkID
}

// contains reports whether the token is in the vocabulary.
func (v *vocab) contains(token string) bool {
	_, ok := v.ids[token]
	return ok
}

// size returns the number of tokens in the vocabulary.
func (v *vocab) size() int {
	return v.count
}
