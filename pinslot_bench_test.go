package pinslot

import (
	"testing"
)

func BenchmarkEmplaceInt(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Scoped(func(sl Slot[int]) {
			ref := sl.Put(i)
			ref.Drop()
		})
	}
}

func BenchmarkEmplaceStruct(b *testing.B) {
	type payload struct {
		A, B, C int64
		Name    string
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Scoped(func(sl Slot[payload]) {
			ref := sl.Emplace(ByRaw(func(dst *payload) {
				dst.A = int64(i)
				dst.Name = "bench"
			}))
			ref.Drop()
		})
	}
}

func BenchmarkConstructMove(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a := NewStorage[selfRef](KindKeep)
		dst := NewStorage[selfRef](KindKeep)
		src := a.Slot().Emplace(initSelfRef("bench"))
		ref := ConstructMove(dst.Slot(), src)
		ref.Drop()
		dst.Close()
		a.Close()
	}
}

func BenchmarkReborrow(b *testing.B) {
	s := NewStorage[int](KindKeep)
	ref := s.Slot().Put(1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		child := ref.Reborrow()
		child.Drop()
	}
	ref.Drop()
	s.Close()
}
