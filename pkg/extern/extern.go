// Package extern bridges foreign-owned memory into pinslot storage.
//
// It is the entry point for object models that hand out raw,
// non-relocatable cells: a foreign allocator supplies the bytes, this
// package checks size and alignment, and the core then runs its normal
// construction protocol (or adopts a value a foreign constructor already
// built in place).
//
// Lifetime remains the foreign owner's problem: every function here
// assumes the supplied memory stays valid and fixed for as long as the
// returned handle lives. A foreign owner relocating the bytes afterwards
// is a contract violation this package cannot detect.
package extern

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/rawbytedev/pinslot"
	"github.com/rawbytedev/pinslot/internal/common"
)

// FromBytes carves an aligned slot for a T out of a caller-owned buffer.
// The buffer is not copied and must outlive the returned Storage. Fails
// with pinslot.ErrOutOfMemory when the buffer cannot hold an aligned T.
func FromBytes[T any](buf []byte, kind pinslot.Kind) (*pinslot.Storage[T], error) {
	size := common.SizeOf[T]()
	align := common.AlignOf[T]()
	if len(buf) == 0 {
		return nil, errors.Wrapf(pinslot.ErrOutOfMemory, "empty buffer, need %d bytes", size)
	}
	base := unsafe.Pointer(&buf[0])
	off := common.AlignOffset(base, align)
	if uintptr(len(buf)) < off+size {
		return nil, errors.Wrapf(pinslot.ErrOutOfMemory, "need %d bytes at alignment %d, have %d", size, align, len(buf))
	}
	return pinslot.BorrowStorage(common.View[T](buf[off:]), kind), nil
}

// FromPointer borrows raw foreign memory as uninitialized storage for a
// T. The caller attests that p spans at least SizeOf[T] bytes; only the
// alignment can be checked here. Fails with pinslot.ErrMisaligned.
func FromPointer[T any](p unsafe.Pointer, kind pinslot.Kind) (*pinslot.Storage[T], error) {
	if align := common.AlignOf[T](); !common.IsAligned(p, align) {
		return nil, errors.Wrapf(pinslot.ErrMisaligned, "0x%x is not %d-byte aligned", uintptr(p), align)
	}
	return pinslot.BorrowStorage((*T)(p), kind), nil
}

// WrapInitialized adopts foreign memory that already holds a constructed
// T, e.g. after passing a slot address to a foreign constructor. With
// pinslot.OwnerSlot the foreign side keeps destructor responsibility;
// pinslot.OwnerRef transfers it to the returned reference.
func WrapInitialized[T any](p unsafe.Pointer, owner pinslot.Owner) (*pinslot.MoveRef[T], error) {
	if align := common.AlignOf[T](); !common.IsAligned(p, align) {
		return nil, errors.Wrapf(pinslot.ErrMisaligned, "0x%x is not %d-byte aligned", uintptr(p), align)
	}
	return pinslot.WrapInitialized((*T)(p), owner), nil
}
