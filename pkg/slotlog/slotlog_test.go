package slotlog

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/pinslot"
)

func TestLogsLifecycle(t *testing.T) {
	var buf bytes.Buffer
	pinslot.SetObserver(New(log.NewLogfmtLogger(&buf)))
	defer pinslot.SetObserver(nil)

	s := pinslot.NewStorage[int](pinslot.KindKeep)
	ref := s.Slot().Put(1)
	ref.Drop()
	s.Close()

	out := buf.String()
	require.Contains(t, out, "event=slot_acquired")
	require.Contains(t, out, "event=slot_constructed")
	require.Contains(t, out, "how=emplace")
	require.Contains(t, out, "event=slot_released")
	assert.Contains(t, out, "addr=0x")
}

func TestObserverReportsDisposal(t *testing.T) {
	var buf bytes.Buffer
	pinslot.SetObserver(New(log.NewLogfmtLogger(&buf)))
	defer pinslot.SetObserver(nil)

	s := pinslot.NewStorage[int](pinslot.KindDrop)
	ref := s.Slot().Put(2)
	ref.Drop()
	s.Close()

	require.Contains(t, buf.String(), "disposed=true")
}
