package classifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxSeqLen caps the token count per message, [CLS] and [SEP] included.
// Symptom descriptions are short; anything past this is truncated.
const maxSeqLen = 128

// tokenizer performs BERT-style WordPiece tokenization. The triage engine
// scores one message per request, so there is no batch path: encode returns
// exact-length sequences with no padding.
type tokenizer struct {
	vocab *vocab
}

// newTokenizer creates a tokenizer from a vocab.txt file.
func newTokenizer(vocabPath string) (*tokenizer, error) {
	v, err := loadVocab(vocabPath)
	if err != nil {
		return nil, err
	}
	return &tokenizer{vocab: v}, nil
}

// encode converts a message into model input ids framed with [CLS] and
// [SEP], truncated to maxSeqLen. The attention mask is all ones — with an
// unpadded single sequence every position is real.
func (t *tokenizer) encode(text string) (ids, mask []int64) {
	var pieces []string
	for _, word := range t.split(t.normalize(text)) {
		pieces = append(pieces, t.subwords(word)...)
	}
	if len(pieces) > maxSeqLen-2 {
		pieces = pieces[:maxSeqLen-2]
	}

	ids = make([]int64, 0, len(pieces)+2)
	ids = append(ids, t.vocab.clsID)
	for _, p := range pieces {
		ids = append(ids, t.vocab.lookup(p))
	}
	ids = append(ids, t.vocab.sepID)

	mask = make([]int64, len(ids))
	for i := range mask {
		mask[i] = 1
	}
	return ids, mask
}

// normalize applies BERT's BasicTokenizer text cleanup: drop control
// characters, collapse whitespace, isolate CJK ideographs, lowercase, and
// strip combining accents after NFD decomposition.
func (t *tokenizer) normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == 0 || r == 0xFFFD || isControl(r):
			// dropped
		case isWhitespace(r):
			b.WriteRune(' ')
		case isCJK(r):
			b.WriteRune(' ')
			b.WriteRune(r)
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	var out strings.Builder
	out.Grow(b.Len())
	for _, r := range norm.NFD.String(strings.ToLower(b.String())) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// split breaks normalized text on whitespace, then peels punctuation runes
// off as standalone tokens.
func (t *tokenizer) split(text string) []string {
	var tokens []string
	for _, word := range strings.Fields(text) {
		var current strings.Builder
		for _, r := range word {
			if !isPunctuation(r) {
				current.WriteRune(r)
				continue
			}
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			tokens = append(tokens, string(r))
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
		}
	}
	return tokens
}

// subwords decomposes one word with greedy longest-match WordPiece.
// Continuation pieces carry the ## prefix. A word with any unmatchable
// remainder collapses to [UNK] as a whole.
func (t *tokenizer) subwords(word string) []string {
	runes := []rune(word)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) > 200 {
		return []string{"[UNK]"}
	}

	var pieces []string
	start := 0
	for start < len(runes) {
		end := len(runes)
		matched := ""
		for end > start {
			piece := string(runes[start:end])
			if start > 0 {
				piece = "##" + piece
			}
			if t.vocab.contains(piece) {
				matched = piece
				break
			}
			end--
		}
		if matched == "" {
			return []string{"[UNK]"}
		}
		pieces = append(pieces, matched)
		start = end
	}
	return pieces
}

// Character classification matching BERT's reference implementation.

func isWhitespace(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r)
}

func isPunctuation(r rune) bool {
	// ASCII ranges 33-47, 58-64, 91-96, 123-126 count as punctuation even
	// where Unicode categories disagree, plus everything Unicode marks Punct.
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) ||
		(r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) ||
		(r >= 0x2A700 && r <= 0x2B73F) ||
		(r >= 0x2B740 && r <= 0x2B81F) ||
		(r >= 0x2B820 && r <= 0x2CEAF) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0x2F800 && r <= 0x2FA1F)
}
