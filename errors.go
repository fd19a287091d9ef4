package pinslot

import "errors"

var (
	// ErrOutOfMemory reports that a caller-supplied memory region cannot
	// satisfy the requested slot's size and alignment.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrCapabilityUnavailable reports an operation the value's type did
	// not opt into, e.g. extracting a non-relocatable type. It is carried
	// by the resulting panic: these are programmer errors, not
	// recoverable failures.
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	// ErrMisaligned reports foreign memory whose address does not satisfy
	// the value type's alignment.
	ErrMisaligned = errors.New("misaligned storage")
)
