package btree

import "errors"

// Sentinel errors for the conditions spec.md §7 names. Callers should
// test with errors.Is; call sites wrap these with fmt.Errorf("...: %w", ...)
// for context, matching the %w convention used throughout DaemonDB's
// storage_engine.
var (
	// ErrBadOpcode is raised when a scan's low or high operator is not in
	// the required set ({GT, GTE} for low, {LT, LTE} for high).
	ErrBadOpcode = errors.New("btree: bad scan opcode")

	// ErrBadRange is raised when startScan's high bound is less than its
	// low bound.
	ErrBadRange = errors.New("btree: high bound less than low bound")

	// ErrNoSuchKeyFound is raised when no leaf entry satisfies a scan's
	// low bound.
	ErrNoSuchKeyFound = errors.New("btree: no key satisfies the scan's low bound")

	// ErrScanNotInitialized is raised by scanNext or endScan when no scan
	// is active.
	ErrScanNotInitialized = errors.New("btree: no scan is active")

	// ErrIndexScanCompleted terminates a scan: raised by scanNext once the
	// current entry fails the high bound or the leaf chain is exhausted.
	ErrIndexScanCompleted = errors.New("btree: scan completed")

	// ErrUnsupportedAttrType is raised for any insert or scan against a
	// non-Integer attribute type.
	ErrUnsupportedAttrType = errors.New("btree: attribute type is declared but not implemented")

	// ErrChecksumMismatch is raised on reopen when the meta page's stored
	// checksum does not match its recomputed value.
	ErrChecksumMismatch = errors.New("btree: meta page checksum mismatch")
)
