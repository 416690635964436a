package services

import (
	"errors"
	"fmt"
)

var (
	// ErrExtraction marks a résumé that could not be read as a PDF document.
	ErrExtraction = errors.New("extraction failed")

	// ErrMissingInput is returned when ranking is requested before a job
	// description and at least one résumé were supplied.
	ErrMissingInput = errors.New("job description and at least one resume are required")

	// ErrEmptyVocabulary is returned when no document in the corpus yields a token.
	ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no terms")

	ErrLengthMismatch = errors.New("names and scores differ in length")
	ErrInvalidFile    = errors.New("invalid file")
)

// ExtractionError names the résumé whose text could not be extracted.
type ExtractionError struct {
	Name string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%v: %v", ErrExtraction, e.Err)
	}
	return fmt.Sprintf("%v for %s: %v", ErrExtraction, e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}
