package catalog

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// tokenizer walks whitespace-separated tokens of a catalog file body.
type tokenizer struct {
	filename string
	tokens   []string
	pos      int
}

func newTokenizer(filename, content string) *tokenizer {
	return &tokenizer{filename: filename, tokens: strings.Fields(content)}
}

func (t *tokenizer) next() (string, error) {
	if t.pos >= len(t.tokens) {
		return "", errors.Errorf("%s ends unexpectedly", t.filename)
	}
	tok := t.tokens[t.pos]
	t.pos++
	return tok, nil
}

func (t *tokenizer) nextInt() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: expected an integer, got %q", t.filename, tok)
	}
	return n, nil
}
