package quiz

import (
	"errors"
	"fmt"

	"github.com/xhad/textotest/pkg/distractor"
)

var (
	// ErrInvalidRequest is the only error Generate returns to callers.
	ErrInvalidRequest = errors.New("invalid quiz request")

	// ErrSimilarityUnavailable is logged and absorbed; distractors fall
	// back to pattern strategies.
	ErrSimilarityUnavailable = distractor.ErrSimilarityUnavailable

	// ErrInsufficientDistractors is absorbed by downgrading or dropping
	// the question.
	ErrInsufficientDistractors = errors.New("insufficient distractors")
)

type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidRequest, e.Field, e.Message)
}

func (e *RequestError) Unwrap() error {
	return ErrInvalidRequest
}
