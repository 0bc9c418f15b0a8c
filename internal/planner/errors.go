package planner

import (
	"errors"
	"fmt"
)

// Validation errors. A mutation returning one of these leaves the store
// untouched and does not schedule a sync.
var (
	ErrEmptyName            = errors.New("name must not be empty")
	ErrTrickNotFound        = errors.New("trick not found")
	ErrChallengeNotFound    = errors.New("challenge not found")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTrainingItemNotFound = errors.New("training item not found")
	ErrPlanNotFound         = errors.New("no training plan for that day")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryExists       = errors.New("category already exists")
	ErrInvalidDifficulty    = errors.New("invalid difficulty")
	ErrInvalidStatus        = errors.New("invalid challenge status")
)

// DecodeError reports a snapshot document that could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode snapshot: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
