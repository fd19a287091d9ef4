//go:build pinslotcheck

package pinslot

// strictChecks upgrades tolerated misuse (double Drop) to an abort.
// Enable with -tags pinslotcheck, e.g. under race or memory checkers.
const strictChecks = true
