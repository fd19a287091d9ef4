//go:build !pinslotcheck

package pinslot

const strictChecks = false
