package extern

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/pinslot"
)

type cell struct {
	val   uint64
	drops *int
}

func (c *cell) Dispose() {
	*c.drops++
}

func TestFromBytesConstruct(t *testing.T) {
	buf := make([]byte, 64)
	s, err := FromBytes[cell](buf, pinslot.KindKeep)
	require.NoError(t, err)
	defer s.Close()

	drops := 0
	ref := s.Slot().Emplace(pinslot.ByRaw(func(dst *cell) {
		dst.val = 7
		dst.drops = &drops
	}))
	require.Equal(t, uint64(7), ref.Get().val)
	ref.Drop()
	require.Equal(t, 1, drops)
}

func TestFromBytesTooSmall(t *testing.T) {
	buf := make([]byte, 3)
	_, err := FromBytes[cell](buf, pinslot.KindKeep)
	require.ErrorIs(t, err, pinslot.ErrOutOfMemory)

	_, err = FromBytes[cell](nil, pinslot.KindKeep)
	require.ErrorIs(t, err, pinslot.ErrOutOfMemory)
}

func TestFromBytesAligns(t *testing.T) {
	// offset the carve point so alignment padding is exercised
	buf := make([]byte, 64)
	s, err := FromBytes[uint64](buf[1:], pinslot.KindKeep)
	require.NoError(t, err)
	defer s.Close()
	if s.Addr()%8 != 0 {
		t.Fatalf("carved slot at 0x%x is not 8-byte aligned", s.Addr())
	}
	ref := s.Slot().Put(42)
	assert.Equal(t, uint64(42), *ref.Get())
	ref.Drop()
}

func TestFromPointerMisaligned(t *testing.T) {
	buf := make([]byte, 16)
	p := unsafe.Pointer(&buf[1])
	if uintptr(p)%8 == 0 {
		p = unsafe.Pointer(&buf[2])
	}
	_, err := FromPointer[uint64](p, pinslot.KindKeep)
	require.ErrorIs(t, err, pinslot.ErrMisaligned)
}

func TestWrapInitializedForeignLifetime(t *testing.T) {
	drops := 0
	foreign := &cell{val: 11, drops: &drops}
	ref, err := WrapInitialized[cell](unsafe.Pointer(foreign), pinslot.OwnerSlot)
	require.NoError(t, err)
	require.Equal(t, uint64(11), ref.Get().val)
	ref.Drop()
	// destructor stays with the foreign owner
	require.Equal(t, 0, drops)
}

func TestBorrowedKindDropDisposes(t *testing.T) {
	drops := 0
	buf := make([]byte, 64)
	s, err := FromBytes[cell](buf, pinslot.KindDrop)
	require.NoError(t, err)

	ref := s.Slot().Emplace(pinslot.ByRaw(func(dst *cell) {
		dst.drops = &drops
	}))
	ref.Drop()
	require.Equal(t, 0, drops)
	s.Close()
	require.Equal(t, 1, drops)
}
