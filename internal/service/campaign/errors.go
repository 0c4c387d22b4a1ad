package campaign

import "errors"

// Sentinel errors for the campaign service layer.
var (
	ErrNotFound     = errors.New("campaign not found")
	ErrEmptyName    = errors.New("campaign name is required")
	ErrInvalidEmail = errors.New("invalid target email address")
)
