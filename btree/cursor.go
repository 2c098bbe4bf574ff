package btree

import (
	"fmt"

	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
	"github.com/Sripradha-karkala/BtreeIndex/types"
)

// StartScan begins an ordered range scan bounded below by (lowVal, lowOp)
// and above by (highVal, highOp). Only one scan may be active at a time;
// starting a new one implicitly ends whatever scan was already running
// (spec.md §4.6, §6.4 startScan).
func (t *Tree) StartScan(lowBytes []byte, lowOp types.Op, highBytes []byte, highOp types.Op) error {
	if t.attrType != types.Integer {
		return ErrUnsupportedAttrType
	}
	if !lowOp.IsLowOp() || !highOp.IsHighOp() {
		return ErrBadOpcode
	}
	lowVal, err := types.DecodeInt32(lowBytes)
	if err != nil {
		return fmt.Errorf("btree: startScan: %w", err)
	}
	highVal, err := types.DecodeInt32(highBytes)
	if err != nil {
		return fmt.Errorf("btree: startScan: %w", err)
	}
	if highVal < lowVal {
		return ErrBadRange
	}

	if t.scanActive {
		if err := t.EndScan(); err != nil {
			return err
		}
	}

	pageID := t.rootPageNum
	isLeaf := t.isRootLeaf
	for !isLeaf {
		buf, err := t.bp.ReadPage(pageID)
		if err != nil {
			return err
		}
		node := newNonLeafView(buf)
		idx := childIndex(node, lowVal)
		childID := node.child(idx)
		nextIsLeaf := node.level() == 1
		if err := t.bp.UnpinPage(pageID, false); err != nil {
			return err
		}
		pageID = childID
		isLeaf = nextIsLeaf
	}

	for {
		buf, err := t.bp.ReadPage(pageID)
		if err != nil {
			return err
		}
		leaf := newLeafView(buf)
		n := leaf.numKeys()
		slot := -1
		for i := 0; i < n; i++ {
			if types.Satisfies(lowOp, leaf.key(i), lowVal) {
				slot = i
				break
			}
		}
		if slot >= 0 {
			t.curLeafPage = pageID
			t.curLeafData = buf
			t.nextEntry = slot
			t.lowVal, t.lowOp = lowVal, lowOp
			t.highVal, t.highOp = highVal, highOp
			t.scanActive = true
			return nil
		}

		next := leaf.rightSib()
		if err := t.bp.UnpinPage(pageID, false); err != nil {
			return err
		}
		if next == 0 {
			return ErrNoSuchKeyFound
		}
		pageID = next
	}
}

// ScanNext returns the next matching RecordID, in ascending key order. It
// returns ErrScanNotInitialized if no scan is active, and
// ErrIndexScanCompleted once the current entry fails the high bound or the
// leaf chain is exhausted — the caller must still call EndScan to release
// the pinned leaf (spec.md §4.6, §7).
func (t *Tree) ScanNext() (types.RecordID, error) {
	if !t.scanActive {
		return types.RecordID{}, ErrScanNotInitialized
	}
	if t.curLeafData == nil {
		return types.RecordID{}, ErrIndexScanCompleted
	}

	leaf := newLeafView(t.curLeafData)
	key := leaf.key(t.nextEntry)
	if !types.Satisfies(t.highOp, key, t.highVal) {
		return types.RecordID{}, ErrIndexScanCompleted
	}

	rid := leaf.rid(t.nextEntry)
	t.nextEntry++

	if t.nextEntry >= leaf.numKeys() {
		next := leaf.rightSib()
		if err := t.bp.UnpinPage(t.curLeafPage, false); err != nil {
			return rid, err
		}
		if next == 0 {
			t.curLeafData = nil
			t.curLeafPage = 0
		} else {
			buf, err := t.bp.ReadPage(next)
			if err != nil {
				return rid, err
			}
			t.curLeafPage = next
			t.curLeafData = buf
			t.nextEntry = 0
		}
	}
	return rid, nil
}

// EndScan releases the currently pinned leaf, if any, and marks the scan
// inactive. It returns ErrScanNotInitialized if no scan is active.
func (t *Tree) EndScan() error {
	if !t.scanActive {
		return ErrScanNotInitialized
	}
	if t.curLeafData != nil {
		if err := t.bp.UnpinPage(t.curLeafPage, false); err != nil {
			return err
		}
	}
	t.scanActive = false
	t.curLeafData = nil
	t.curLeafPage = diskfile.PageID(0)
	t.nextEntry = 0
	return nil
}
