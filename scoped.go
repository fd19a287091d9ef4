package pinslot

// Scoped runs fn with a fresh slot whose storage is torn down on every
// exit path, including panics. The storage is KindKeep: references
// created inside fn carry drop responsibility and must be retired
// (ref.Drop) before fn returns, or the teardown leak check fires.
func Scoped[T any](fn func(Slot[T])) {
	s := NewStorage[T](KindKeep)
	defer s.Close()
	fn(s.Slot())
}

// ScopedErr is Scoped for callbacks that can fail. Teardown still runs
// on every path; the callback's error is returned unchanged.
func ScopedErr[T any](fn func(Slot[T]) error) error {
	s := NewStorage[T](KindKeep)
	defer s.Close()
	return fn(s.Slot())
}

// ScopedDrop is Scoped with KindDrop storage: references are OwnerSlot
// and the storage teardown disposes the value, so fn only has to retire
// its handles.
func ScopedDrop[T any](fn func(Slot[T])) {
	s := NewStorage[T](KindDrop)
	defer s.Close()
	fn(s.Slot())
}
