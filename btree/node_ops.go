package btree

import (
	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
	"github.com/Sripradha-karkala/BtreeIndex/types"
)

// insertEntryInLeaf inserts (key, rid) into leaf, which must not be full.
// Equal keys are inserted leftmost-stable: among entries sharing key's
// value, the new one lands before all of them (spec.md §4.2, supplemented
// per original_source/btree.cpp's duplicate-key placement — see
// SPEC_FULL.md §D.6).
func insertEntryInLeaf(leaf leafView, key int32, rid types.RecordID) {
	n := leaf.numKeys()
	i := 0
	for i < n && leaf.key(i) < key {
		i++
	}
	for j := n; j > i; j-- {
		leaf.setEntry(j, leaf.key(j-1), leaf.rid(j-1))
	}
	leaf.setEntry(i, key, rid)
	leaf.setNumKeys(n + 1)
}

// splitLeafNode splits a full leaf in two and inserts (key, rid) into
// whichever half it belongs in, returning the new right sibling's page id
// and the separator key to promote into the parent — the new right leaf's
// first key, per spec.md §4.2.
//
// left is already pinned by the caller under leftID; the caller unpins it.
// The returned right leaf is allocated, written, and unpinned here.
func (t *Tree) splitLeafNode(leftID diskfile.PageID, left leafView, key int32, rid types.RecordID) (diskfile.PageID, int32, error) {
	rightID, rightBuf, err := t.bp.AllocPage()
	if err != nil {
		return 0, 0, err
	}
	right := newLeafView(rightBuf)
	right.init()

	mid := LeafFanout/2 + 1
	n := left.numKeys()
	count := n - mid
	for i := 0; i < count; i++ {
		right.setEntry(i, left.key(mid+i), left.rid(mid+i))
		left.clearEntry(mid + i)
	}
	right.setNumKeys(count)
	left.setNumKeys(mid)

	right.setRightSib(left.rightSib())
	left.setRightSib(rightID)

	if count > 0 && key >= right.key(0) {
		insertEntryInLeaf(right, key, rid)
	} else {
		insertEntryInLeaf(left, key, rid)
	}
	promoted := right.key(0)

	if err := t.bp.UnpinPage(rightID, true); err != nil {
		return 0, 0, err
	}
	return rightID, promoted, nil
}
