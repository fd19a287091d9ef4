package pinslot

// Initializer constructs a value of type T directly at dst. It must
// treat dst as freshly allocated memory and leave it fully initialized.
type Initializer[T any] func(dst *T)

// TryInitializer is an Initializer whose construction may fail. On error
// dst is treated as still uninitialized.
type TryInitializer[T any] func(dst *T) error

// Of initializes the slot from an existing value, moving it bytewise.
func Of[T any](val T) Initializer[T] {
	return func(dst *T) {
		*dst = val
	}
}

// By initializes the slot from a value-producing thunk. The thunk runs
// at construction time, not at Of-capture time.
func By[T any](f func() T) Initializer[T] {
	return func(dst *T) {
		*dst = f()
	}
}

// ByRaw hands the raw destination to f, which must fully initialize it.
// This is the escape hatch for constructors that need the final address,
// e.g. to seed internal self-references.
func ByRaw[T any](f func(dst *T)) Initializer[T] {
	return Initializer[T](f)
}

// Default initializes the slot with T's zero value.
func Default[T any]() Initializer[T] {
	return func(dst *T) {
		var zero T
		*dst = zero
	}
}

// MoveConstructible is the explicit move constructor capability. MoveTo
// rebuilds the receiver's value at dst, re-targeting any internal
// self-references at the new address, and leaves the receiver in a
// defined moved-from state whose Dispose is a no-op.
//
// Implementing MoveConstructible declares the type non-relocatable:
// Extract refuses it, so the only way its bytes change address is
// through MoveTo.
type MoveConstructible[T any] interface {
	MoveTo(dst *T)
}

// CopyConstructible is the optional duplication capability. CopyTo
// builds an independent copy of the receiver's value at dst; the
// receiver remains fully valid.
type CopyConstructible[T any] interface {
	CopyTo(dst *T)
}

// ConstructMove initializes the slot by explicitly move-constructing
// from src. The source reference is consumed: it is marked moved-from,
// its destructor will not run, and any further access through it panics.
func ConstructMove[T any, P interface {
	*T
	MoveConstructible[T]
}](sl Slot[T], src *MoveRef[T]) *MoveRef[T] {
	src.assertLive("move from")
	src.assertSole("move from")
	sl.st.initialize()
	P(src.ptr).MoveTo(sl.mem)
	src.markMoved()
	return sl.complete("move")
}

// ConstructCopy initializes the slot by copy-constructing from src,
// which stays valid and independently usable.
func ConstructCopy[T any, P interface {
	*T
	CopyConstructible[T]
}](sl Slot[T], src *T) *MoveRef[T] {
	sl.st.initialize()
	P(src).CopyTo(sl.mem)
	return sl.complete("copy")
}

// Mov adapts a move source into an Initializer so it can feed any
// emplace site. The source is consumed when the initializer runs.
func Mov[T any, P interface {
	*T
	MoveConstructible[T]
}](src *MoveRef[T]) Initializer[T] {
	return func(dst *T) {
		src.assertLive("move from")
		src.assertSole("move from")
		P(src.ptr).MoveTo(dst)
		src.markMoved()
	}
}
