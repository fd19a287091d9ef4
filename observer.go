package pinslot

// Observer receives slot lifecycle events for diagnostics. Purely
// observational: implementations must not retain or dereference the
// reported addresses.
type Observer interface {
	// SlotAcquired fires when storage is reserved or borrowed.
	SlotAcquired(addr, size uintptr)
	// SlotConstructed fires when a value is initialized into a slot.
	// how is one of "emplace", "move", "copy", "wrap".
	SlotConstructed(addr uintptr, how string)
	// SlotReleased fires when a reference or storage retires; disposed
	// reports whether the destructor has run by that point.
	SlotReleased(addr uintptr, disposed bool)
}

var observer Observer

// SetObserver installs the package-wide diagnostics observer; nil
// disables it. Not safe to call concurrently with slot operations.
func SetObserver(o Observer) {
	observer = o
}
