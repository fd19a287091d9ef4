// Package pinslot provides placement construction and pinned, move-aware
// references for values whose address must never change.
//
// A Storage reserves address-fixed memory for exactly one value. A Slot is
// the one-shot window through which that memory may be initialized, and a
// MoveRef is the unique handle to the initialized value. Types that hold
// internal self-references opt into the explicit construction protocol
// (see MoveConstructible) instead of being relocated bytewise.
//
// The package performs no scheduling and no I/O; all checks are plain
// pointer/flag bookkeeping on the calling goroutine. Ownership violations
// (double initialization, use after move, leaked references) panic rather
// than corrupt memory.
package pinslot

import (
	"fmt"
	"sync"
	"unsafe"

	// Address stability of heap-backed storage depends on the runtime
	// never moving objects once allocated.
	_ "go4.org/unsafe/assume-no-moving-gc"
)

// Kind dictates whether a Storage disposes its value during Close.
type Kind uint8

const (
	// KindDrop makes the Storage responsible for running Dispose on Close.
	// References handed out over it carry OwnerSlot.
	KindDrop Kind = iota
	// KindKeep leaves disposal to the reference holder. References handed
	// out over it carry OwnerRef.
	KindKeep
)

func (k Kind) String() string {
	switch k {
	case KindDrop:
		return "drop"
	case KindKeep:
		return "keep"
	default:
		return "Kind(?)"
	}
}

func (k Kind) owner() Owner {
	if k == KindDrop {
		return OwnerSlot
	}
	return OwnerRef
}

// noCopy makes go vet flag Storage values that are copied after first use.
type noCopy [0]sync.Mutex

// status tracks one storage cell: whether it was initialized, whether
// disposal was handed off or already ran, and how many live references
// still point into it.
type status struct {
	addr        uintptr
	initialized bool
	released    bool
	disposed    bool
	refs        int
}

func (st *status) initialize() {
	if st.initialized {
		panic(fmt.Sprintf("pinslot: slot at 0x%x initialized twice", st.addr))
	}
	st.initialized = true
	st.refs++
}

// reset returns the cell to uninitialized after a failed constructor.
func (st *status) reset() {
	st.initialized = false
	st.refs = 0
}

func (st *status) increment() {
	st.refs++
}

func (st *status) decrement() {
	if st.refs == 0 {
		panic(fmt.Sprintf("pinslot: reference counter underflow at 0x%x", st.addr))
	}
	st.refs--
}

// isLeaking reports live references at teardown. A released cell still
// counts: a forgotten reborrow leaks regardless of who owns disposal.
func (st *status) isLeaking() bool {
	return st.initialized && st.refs != 0
}

// dispose runs the value's destructor hook exactly once.
func disposeValue[T any](st *status, ptr *T) {
	if st.disposed {
		panic(fmt.Sprintf("pinslot: value at 0x%x disposed twice", st.addr))
	}
	st.disposed = true
	if d, ok := any(ptr).(Disposer); ok {
		d.Dispose()
	}
}

// Disposer is the destructor hook. Values that implement it on their
// pointer receiver have Dispose run exactly once, either by the owning
// MoveRef or by the Storage teardown, never both.
type Disposer interface {
	Dispose()
}

// Storage reserves address-fixed memory for one value of type T. The
// handle may be passed around; the cell it denotes never moves. Storage
// must not be copied by value after Slot has been called.
type Storage[T any] struct {
	_ noCopy

	kind     Kind
	inline   T
	mem      *T
	st       status
	self     *Storage[T]
	borrowed bool
}

// NewStorage acquires heap-backed, uninitialized storage for a T. The
// bytes are reclaimed by the runtime once the Storage (and every value
// ever constructed in it) is dead; Close runs the destructor side of
// teardown and must be called on every path, typically via defer.
func NewStorage[T any](kind Kind) *Storage[T] {
	s := &Storage[T]{kind: kind}
	s.mem = &s.inline
	s.st.addr = uintptr(unsafe.Pointer(s.mem))
	s.self = s
	if observer != nil {
		observer.SlotAcquired(s.st.addr, unsafe.Sizeof(s.inline))
	}
	return s
}

// BorrowStorage wraps memory the caller does not own, e.g. a cell handed
// over by a foreign allocator. Close never reclaims the bytes; with
// KindDrop it still runs Dispose, with KindKeep teardown is fully
// suppressed and the foreign owner keeps lifetime responsibility.
//
// The memory behind mem must stay valid and fixed for the lifetime of
// the Storage; a foreign owner relocating it is a contract violation
// this package cannot detect.
func BorrowStorage[T any](mem *T, kind Kind) *Storage[T] {
	s := &Storage[T]{kind: kind, mem: mem, borrowed: true}
	s.st.addr = uintptr(unsafe.Pointer(mem))
	s.self = s
	if observer != nil {
		observer.SlotAcquired(s.st.addr, unsafe.Sizeof(*mem))
	}
	return s
}

// check aborts when the Storage value was copied or zero-constructed,
// since either would break the fixed-address contract.
func (s *Storage[T]) check() {
	if s.self != s {
		panic("pinslot: illegal copy or use of zero Storage value")
	}
}

// Slot projects the construction window for the storage. The underlying
// cell can be initialized exactly once; a second construction attempt
// through any projection panics.
func (s *Storage[T]) Slot() Slot[T] {
	s.check()
	return Slot[T]{mem: s.mem, st: &s.st, kind: s.kind}
}

// Addr reports the fixed address of the cell. Diagnostic use only: the
// result must never be turned back into a pointer.
func (s *Storage[T]) Addr() uintptr {
	s.check()
	return s.st.addr
}

// Close tears the storage down. Order of checks mirrors the lifecycle:
// nothing to do if construction never happened, abort if references are
// still live, otherwise run Dispose when this storage carries drop
// responsibility and it was neither released nor already run.
func (s *Storage[T]) Close() {
	s.check()
	if !s.st.initialized {
		return
	}
	if s.st.isLeaking() {
		panic(fmt.Sprintf("pinslot: a critical reference counter at 0x%x was not zeroed", s.st.addr))
	}
	if s.kind == KindDrop && !s.st.released && !s.st.disposed {
		disposeValue(&s.st, s.mem)
	}
	if observer != nil {
		observer.SlotReleased(s.st.addr, s.st.disposed)
	}
}

// Slot is a one-shot projection of a Storage: the only way to get a value
// constructed at the storage's fixed address. A Slot is a small value and
// may be passed by value; the cell it points into does not move.
type Slot[T any] struct {
	mem  *T
	st   *status
	kind Kind
}

// Emplace constructs a value directly in the slot and returns the owning
// reference. The initializer runs against the final address, so no
// intermediate relocation happens beyond what the initializer itself does.
func (sl Slot[T]) Emplace(init Initializer[T]) *MoveRef[T] {
	sl.st.initialize()
	init(sl.mem)
	return sl.complete("emplace")
}

// TryEmplace is Emplace for fallible constructors. On error the slot is
// returned to the uninitialized state and may be projected again.
func (sl Slot[T]) TryEmplace(init TryInitializer[T]) (*MoveRef[T], error) {
	sl.st.initialize()
	if err := init(sl.mem); err != nil {
		sl.st.reset()
		return nil, err
	}
	return sl.complete("emplace"), nil
}

// Put moves val into the slot bytewise. Only appropriate for relocatable
// values; address-sensitive types go through ConstructMove instead.
func (sl Slot[T]) Put(val T) *MoveRef[T] {
	return sl.Emplace(Of(val))
}

// Addr reports the fixed address of the slot's cell, for diagnostics.
func (sl Slot[T]) Addr() uintptr {
	return sl.st.addr
}

func (sl Slot[T]) complete(how string) *MoveRef[T] {
	if observer != nil {
		observer.SlotConstructed(sl.st.addr, how)
	}
	return &MoveRef[T]{ptr: sl.mem, st: sl.st, owner: sl.kind.owner()}
}
