package t2048

import "errors"

// ErrUnknownDirection is returned by ParseDirection for words that are not
// one of up, down, left or right.
var ErrUnknownDirection = errors.New("t2048: unknown direction")
