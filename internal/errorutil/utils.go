package errorutil

import "errors"

// IsGrammarErr returns true if the error is a grammar (validation) error,
// i.e. one produced by rejecting malformed input rather than a programming error.
func IsGrammarErr(err error) bool {
	var e interface{ Grammar() bool }
	return errors.As(err, &e) && e.Grammar()
}
