package core

import "errors"

// Validation errors. All are raised at construction time; once a value is
// built it is valid for the lifetime of the program.
var (
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrInvalidReferenceSet = errors.New("invalid reference flight set")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrInvalidPath         = errors.New("invalid path")
)
