package errorz

import "errors"

var (
	NotFound       = errors.New("not found")
	InvalidPayload = errors.New("invalid payload")
	DuplicateID    = errors.New("duplicate id")
)
