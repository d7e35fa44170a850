package roadmaps

import "errors"

var (
	ErrNotFound   = errors.New("roadmap not found")
	ErrValidation = errors.New("invalid roadmap request")
)
