package document

import "errors"

var (
	// ErrKeyNotFound is returned when no line in a section carries the requested key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrItemNotFound is returned when no list item in a section matches.
	ErrItemNotFound = errors.New("list item not found")

	// ErrMultiline is returned when a value cannot be written on a single line.
	ErrMultiline = errors.New("value must fit on a single line")
)
