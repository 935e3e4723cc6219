package services

import "errors"

// Errors returned by the tracker services. Store failures are wrapped and
// propagated as-is; everything a caller can act on is one of these.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateName   = errors.New("a product with this name already exists")
	ErrDuplicatePeriod = errors.New("this order period already exists")
	ErrNotFound        = errors.New("not found")
	ErrNoOpenPeriod    = errors.New("no open order period available")
)
