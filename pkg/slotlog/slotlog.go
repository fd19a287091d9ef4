// Package slotlog is a pinslot.Observer that emits slot lifecycle events
// as structured log lines. Opt-in and purely observational; the core
// package stays silent without it.
package slotlog

import (
	"fmt"

	"github.com/go-kit/log"

	"github.com/rawbytedev/pinslot"
)

type observer struct {
	logger log.Logger
}

// New returns an Observer that logs every slot event through logger.
func New(logger log.Logger) pinslot.Observer {
	return &observer{logger: logger}
}

func (o *observer) SlotAcquired(addr, size uintptr) {
	o.logger.Log("event", "slot_acquired", "addr", hex(addr), "size", size)
}

func (o *observer) SlotConstructed(addr uintptr, how string) {
	o.logger.Log("event", "slot_constructed", "addr", hex(addr), "how", how)
}

func (o *observer) SlotReleased(addr uintptr, disposed bool) {
	o.logger.Log("event", "slot_released", "addr", hex(addr), "disposed", disposed)
}

func hex(addr uintptr) string {
	return fmt.Sprintf("0x%x", addr)
}
