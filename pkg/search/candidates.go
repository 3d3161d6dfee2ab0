package search

import (
	"errors"
	"fmt"
)

// ErrNoCandidates reports an empty candidate set. It is a normal
// terminal outcome of a hunt, not a failure.
var ErrNoCandidates = errors.New("no candidate authors found")

// ErrAmbiguous reports that several candidates remain and the caller
// has no way to ask for a selection.
var ErrAmbiguous = errors.New("multiple candidate authors remain, a selection is required")

// Resolve returns the unique candidate, ErrNoCandidates for an empty
// list, or ErrAmbiguous when a selection is needed. Callers with a
// prompt catch ErrAmbiguous and drive Select; callers without one
// surface it.
func Resolve(candidates []string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", ErrNoCandidates
	case 1:
		return candidates[0], nil
	default:
		return "", ErrAmbiguous
	}
}

// Select resolves a zero-based index against the ordered candidate
// list. The interactive prompt loop lives in the CLI; this is the pure
// part it drives.
func Select(candidates []string, index int) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	if index < 0 || index >= len(candidates) {
		return "", fmt.Errorf("selection index %d out of bounds (have %d candidates)", index, len(candidates))
	}
	return candidates[index], nil
}
