package domain

import "errors"

// ErrInvalidDrawFormat is returned when a record cannot be normalized into a Draw.
var ErrInvalidDrawFormat = errors.New("invalid draw format")

// ErrDomainExhaustion is returned when a requested combination cannot be completed
// from the numbers left in the domain.
var ErrDomainExhaustion = errors.New("domain exhausted")

// ErrInvalidDomain is returned when a Domain has a non-positive range or arity.
var ErrInvalidDomain = errors.New("invalid domain")

// ErrInvalidSeed is returned when a seed contains out-of-domain or repeated numbers.
var ErrInvalidSeed = errors.New("invalid seed")

// ErrEmptyHistory is returned by operations that require at least one draw.
var ErrEmptyHistory = errors.New("empty history")

// ErrBatchNotFound is returned when a batch ID cannot be found in the store.
var ErrBatchNotFound = errors.New("batch not found")

// ErrInvalidTarget is returned when a requested combination size is not positive.
var ErrInvalidTarget = errors.New("invalid target size")
