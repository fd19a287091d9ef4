package pinslot

import (
	"fmt"
	"unsafe"
)

// Owner says who runs the destructor for a referent.
type Owner uint8

const (
	// OwnerSlot leaves disposal to the enclosing Storage teardown; the
	// reference's own Drop only retires the handle.
	OwnerSlot Owner = iota
	// OwnerRef makes the reference holder responsible: Drop runs Dispose
	// unless the value was extracted or released first.
	OwnerRef
)

func (o Owner) String() string {
	switch o {
	case OwnerSlot:
		return "slot"
	case OwnerRef:
		return "ref"
	default:
		return "Owner(?)"
	}
}

// MoveRef is a unique handle to an initialized value sitting at a fixed
// address inside some Storage. While the handle is live the referent's
// bytes never move. The handle itself may be passed around freely.
//
// Every MoveRef must be retired on every code path, normally with
// `defer ref.Drop()`; a reference that is simply forgotten trips the
// leak check when its Storage closes.
type MoveRef[T any] struct {
	ptr   *T
	st    *status
	owner Owner
	done  bool
}

// WrapInitialized adopts memory that a collaborator already initialized,
// e.g. a foreign constructor invoked directly on a borrowed cell. With
// OwnerSlot the foreign side keeps lifetime responsibility and Drop is a
// pure handle retirement; with OwnerRef disposal transfers to the holder.
func WrapInitialized[T any](mem *T, owner Owner) *MoveRef[T] {
	st := &status{addr: uintptr(unsafe.Pointer(mem))}
	st.initialize()
	if owner == OwnerSlot {
		// Foreign side disposes; make sure we never do.
		st.released = true
	}
	if observer != nil {
		observer.SlotConstructed(st.addr, "wrap")
	}
	return &MoveRef[T]{ptr: mem, st: st, owner: owner}
}

// Get derives a shared borrow of the referent. The usual aliasing rules
// apply: the result must not be written through, and must not outlive
// the reference.
func (r *MoveRef[T]) Get() *T {
	r.assertLive("read")
	return r.ptr
}

// Mut derives the exclusive borrow of the referent for in-place
// mutation. No other derived borrow may be used while it is.
func (r *MoveRef[T]) Mut() *T {
	r.assertLive("write")
	return r.ptr
}

// Addr reports the referent's fixed address, for diagnostics and
// address-stability assertions.
func (r *MoveRef[T]) Addr() uintptr {
	return r.st.addr
}

// Owner reports who is responsible for disposing the referent.
func (r *MoveRef[T]) Owner() Owner {
	return r.owner
}

// Reborrow narrows the reference to a secondary handle over the same
// cell. Drop responsibility stays where it was: the child is always
// OwnerSlot and its Drop only retires the handle. The child must be
// dropped before the parent.
func (r *MoveRef[T]) Reborrow() *MoveRef[T] {
	r.assertLive("reborrow")
	r.st.increment()
	return &MoveRef[T]{ptr: r.ptr, st: r.st, owner: OwnerSlot}
}

// Release inhibits destruction entirely and hands the raw pointer out.
// The caller takes over responsibility for whatever cleanup the value
// needs; nothing in this package will touch it again.
func (r *MoveRef[T]) Release() *T {
	r.assertLive("release")
	r.assertSole("release")
	r.done = true
	r.st.released = true
	r.st.decrement()
	return r.ptr
}

// Extract moves the value out bytewise and transfers drop responsibility
// to the caller. Only relocatable types may be extracted: a type that
// implements MoveConstructible, or embeds NoRelocate, declared that its
// bytes are address-sensitive, and extracting it panics with
// ErrCapabilityUnavailable instead of silently relocating.
func (r *MoveRef[T]) Extract() T {
	r.assertLive("extract")
	r.assertSole("extract")
	if _, ok := any(r.ptr).(MoveConstructible[T]); ok {
		panic(fmt.Errorf("pinslot: extract of move-constructible type at 0x%x: %w", r.st.addr, ErrCapabilityUnavailable))
	}
	if _, ok := any(r.ptr).(pinned); ok {
		panic(fmt.Errorf("pinslot: extract of pinned type at 0x%x: %w", r.st.addr, ErrCapabilityUnavailable))
	}
	r.done = true
	r.st.released = true
	r.st.decrement()
	return *r.ptr
}

// Drop retires the reference. If the holder carries drop responsibility
// and the value was neither extracted nor released, the destructor runs
// here, exactly once. Dropping twice is a programmer error; under the
// pinslotcheck build tag it aborts, otherwise the second call is a no-op.
func (r *MoveRef[T]) Drop() {
	if r.done {
		if strictChecks {
			panic(fmt.Sprintf("pinslot: reference at 0x%x dropped twice", r.st.addr))
		}
		return
	}
	if r.owner == OwnerRef && !r.st.released {
		// destruction must come after the last narrowed reference
		r.assertSole("drop")
	}
	r.done = true
	if r.owner == OwnerRef && !r.st.released {
		disposeValue(r.st, r.ptr)
	}
	r.st.decrement()
	if observer != nil {
		observer.SlotReleased(r.st.addr, r.st.disposed)
	}
}

// markMoved retires a reference whose referent was consumed by an
// explicit move constructor. The moved-from value's destructor becomes
// a no-op.
func (r *MoveRef[T]) markMoved() {
	r.done = true
	r.st.released = true
	r.st.decrement()
}

func (r *MoveRef[T]) assertLive(op string) {
	if r.done {
		panic(fmt.Sprintf("pinslot: %s through dead reference at 0x%x (moved from, extracted, or dropped)", op, r.st.addr))
	}
}

// assertSole aborts a terminal operation while narrowed references into
// the same cell are still live; destroying or relocating the value must
// strictly follow the last of them.
func (r *MoveRef[T]) assertSole(op string) {
	if r.st.refs > 1 {
		panic(fmt.Sprintf("pinslot: %s at 0x%x with %d outstanding reborrows", op, r.st.addr, r.st.refs-1))
	}
}

// NoRelocate is a zero-size marker. Embedding it declares a type
// address-sensitive without requiring a move constructor: Extract will
// refuse it, so the value can only leave its cell via Release or an
// explicit MoveConstructible implementation on the enclosing type.
type NoRelocate struct{}

func (NoRelocate) noRelocate() {}

type pinned interface{ noRelocate() }
