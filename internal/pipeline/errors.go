package pipeline

import "errors"

// ErrUnregisteredLanguage is returned when Analyze is asked to parse a
// language the grammar registry has no LanguageSpec for.
var ErrUnregisteredLanguage = errors.New("unregistered language")

// ErrInvariantViolation is returned when a pass panics on one of the
// graph's internal invariant checks. It signals a bug in the pipeline, not
// a property of the analysed source; the document's prior revision stays
// published.
var ErrInvariantViolation = errors.New("internal invariant violation")
