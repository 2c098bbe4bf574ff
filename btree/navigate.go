package btree

import (
	"fmt"

	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
	"github.com/Sripradha-karkala/BtreeIndex/types"
)

// promotion carries a new child produced by a lower split up one level:
// its page id and the separator key that must be inserted ahead of it.
type promotion struct {
	childID diskfile.PageID
	key     int32
}

// InsertEntry inserts one (key, rid) pair into the tree, splitting nodes
// and growing the root as needed (spec.md §4.4, §6.4 insertEntry).
func (t *Tree) InsertEntry(keyBytes []byte, rid types.RecordID) error {
	if t.attrType != types.Integer {
		return ErrUnsupportedAttrType
	}
	key, err := types.DecodeInt32(keyBytes)
	if err != nil {
		return fmt.Errorf("btree: insertEntry: %w", err)
	}

	if t.isRootLeaf {
		buf, err := t.bp.ReadPage(t.rootPageNum)
		if err != nil {
			return err
		}
		leaf := newLeafView(buf)
		if !leaf.isFull() {
			insertEntryInLeaf(leaf, key, rid)
			return t.bp.UnpinPage(t.rootPageNum, true)
		}
		newLeafID, promotedKey, err := t.splitLeafNode(t.rootPageNum, leaf, key, rid)
		if err != nil {
			t.bp.UnpinPage(t.rootPageNum, true)
			return err
		}
		if err := t.bp.UnpinPage(t.rootPageNum, true); err != nil {
			return err
		}
		t.log.Info("btree: root leaf split", "left", t.rootPageNum, "right", newLeafID, "promoted", promotedKey)
		return t.makeNewRootNode(t.rootPageNum, newLeafID, promotedKey, true)
	}

	p, err := t.insertDescend(t.rootPageNum, key, rid)
	if err != nil {
		return err
	}
	if p != nil {
		return t.makeNewRootNode(t.rootPageNum, p.childID, p.key, false)
	}
	return nil
}

// insertDescend recursively descends from currPage (a non-leaf) to the
// leaf that should hold (key, rid), inserting and splitting on the way
// back up. It returns a non-nil *promotion only when currPage itself had
// to split — in that case the caller (either insertDescend one level up,
// or InsertEntry at the root) must insert the promotion into currPage's
// parent, or grow a new root if currPage was the root.
func (t *Tree) insertDescend(currPage diskfile.PageID, key int32, rid types.RecordID) (*promotion, error) {
	buf, err := t.bp.ReadPage(currPage)
	if err != nil {
		return nil, err
	}
	node := newNonLeafView(buf)
	idx := childIndex(node, key)
	childID := node.child(idx)

	var childPromotion *promotion
	if node.level() == 1 {
		childPromotion, err = t.insertIntoLeafChild(childID, key, rid)
	} else {
		childPromotion, err = t.insertDescend(childID, key, rid)
	}
	if err != nil {
		t.bp.UnpinPage(currPage, false)
		return nil, err
	}
	if childPromotion == nil {
		return nil, t.bp.UnpinPage(currPage, false)
	}

	var result *promotion
	if !node.isFull() {
		insertEntryInNonLeaf(node, childPromotion.key, childPromotion.childID)
	} else {
		newNodeID, promotedKey, err := t.splitNonLeafNode(currPage, node, childPromotion.key, childPromotion.childID)
		if err != nil {
			t.bp.UnpinPage(currPage, true)
			return nil, err
		}
		t.log.Info("btree: non-leaf split", "left", currPage, "right", newNodeID, "promoted", promotedKey)
		result = &promotion{childID: newNodeID, key: promotedKey}
	}
	if err := t.bp.UnpinPage(currPage, true); err != nil {
		return nil, err
	}
	return result, nil
}

// insertIntoLeafChild inserts (key, rid) into the leaf at childID,
// splitting it if full, and returns the promotion its parent must absorb.
func (t *Tree) insertIntoLeafChild(childID diskfile.PageID, key int32, rid types.RecordID) (*promotion, error) {
	buf, err := t.bp.ReadPage(childID)
	if err != nil {
		return nil, err
	}
	leaf := newLeafView(buf)
	if !leaf.isFull() {
		insertEntryInLeaf(leaf, key, rid)
		return nil, t.bp.UnpinPage(childID, true)
	}
	newLeafID, promotedKey, err := t.splitLeafNode(childID, leaf, key, rid)
	if err != nil {
		t.bp.UnpinPage(childID, true)
		return nil, err
	}
	if err := t.bp.UnpinPage(childID, true); err != nil {
		return nil, err
	}
	t.log.Info("btree: leaf split", "left", childID, "right", newLeafID, "promoted", promotedKey)
	return &promotion{childID: newLeafID, key: promotedKey}, nil
}

// makeNewRootNode allocates a fresh non-leaf root with exactly one
// separator key, wrapping the old root (now leftChildID) and a new
// sibling (rightChildID, promoted by a split at the old root) as its two
// children (spec.md §4.4). childrenAreLeaves is true only when the old
// root was itself a leaf that just split.
func (t *Tree) makeNewRootNode(leftChildID, rightChildID diskfile.PageID, key int32, childrenAreLeaves bool) error {
	newRootID, buf, err := t.bp.AllocPage()
	if err != nil {
		return err
	}
	root := newNonLeafView(buf)
	level := uint8(0)
	if childrenAreLeaves {
		level = 1
	}
	root.init(level)
	root.setKey(0, key)
	root.setChild(0, leftChildID)
	root.setChild(1, rightChildID)
	root.setNumKeys(1)
	if err := t.bp.UnpinPage(newRootID, true); err != nil {
		return err
	}

	t.rootPageNum = newRootID
	t.isRootLeaf = false
	return t.writeMetaRoot(newRootID, false)
}
