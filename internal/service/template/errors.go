package template

import "errors"

// Sentinel errors for the template service layer.
var (
	ErrNotFound     = errors.New("template not found")
	ErrMissingField = errors.New("missing required template field")
)
