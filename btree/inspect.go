package btree

import "github.com/Sripradha-karkala/BtreeIndex/diskfile"

// LeafSummary describes one leaf page for inspection tooling — it is not
// part of the core index contract, grounded on DaemonDB's
// bplustree.InspectIndexFile but rewritten against this package's fixed
// on-page layout instead of walking a generic in-memory tree.
type LeafSummary struct {
	PageNo   diskfile.PageID
	NumKeys  int
	FirstKey int32
	LastKey  int32
	RightSib diskfile.PageID
}

// WalkLeaves returns a summary of every leaf page, left to right, by
// descending to the leftmost leaf and following the right-sibling chain.
// It never holds more than one page pinned at a time.
func (t *Tree) WalkLeaves() ([]LeafSummary, error) {
	pageID := t.rootPageNum
	isLeaf := t.isRootLeaf
	for !isLeaf {
		buf, err := t.bp.ReadPage(pageID)
		if err != nil {
			return nil, err
		}
		node := newNonLeafView(buf)
		childID := node.child(0)
		nextIsLeaf := node.level() == 1
		if err := t.bp.UnpinPage(pageID, false); err != nil {
			return nil, err
		}
		pageID = childID
		isLeaf = nextIsLeaf
	}

	var out []LeafSummary
	for pageID != 0 {
		buf, err := t.bp.ReadPage(pageID)
		if err != nil {
			return nil, err
		}
		leaf := newLeafView(buf)
		n := leaf.numKeys()
		s := LeafSummary{PageNo: pageID, NumKeys: n, RightSib: leaf.rightSib()}
		if n > 0 {
			s.FirstKey = leaf.key(0)
			s.LastKey = leaf.key(n - 1)
		}
		out = append(out, s)
		next := leaf.rightSib()
		if err := t.bp.UnpinPage(pageID, false); err != nil {
			return nil, err
		}
		pageID = next
	}
	return out, nil
}
