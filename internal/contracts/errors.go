package contracts

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a configuration field with a bad value.
	ErrValidation = errors.New("invalid configuration")
	// ErrType marks a configuration field with the wrong type.
	ErrType = errors.New("invalid configuration type")
	// ErrSchema marks a result that breaks the output schema.
	ErrSchema = errors.New("result schema violation")
	// ErrMissingKey marks a result whose metadata lacks a required key.
	ErrMissingKey = fmt.Errorf("%w: missing required key", ErrSchema)
)
