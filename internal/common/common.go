package common

import (
	"unsafe"
)

// SizeOf returns the byte width of T.
func SizeOf[T any]() uintptr {
	var v T
	return unsafe.Sizeof(v)
}

// AlignOf returns the required alignment of T.
func AlignOf[T any]() uintptr {
	var v T
	return unsafe.Alignof(v)
}

// IsAligned reports whether p satisfies align, which must be a power of
// two.
func IsAligned(p unsafe.Pointer, align uintptr) bool {
	return uintptr(p)&(align-1) == 0
}

// AlignOffset returns how many bytes past p the next align boundary is.
func AlignOffset(p unsafe.Pointer, align uintptr) uintptr {
	return (align - uintptr(p)&(align-1)) & (align - 1)
}

// View aliases the front of b as a *T without copying; caller must
// ensure b is large enough, correctly aligned, and outlives the result.
func View[T any](b []byte) *T {
	return (*T)(unsafe.Pointer(&b[0]))
}
