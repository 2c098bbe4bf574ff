package btree

import "github.com/Sripradha-karkala/BtreeIndex/diskfile"

// insertAt returns a copy of s with elem inserted at index i, shifting
// everything from i onward right by one — the same small generic slice
// helper shape DaemonDB keeps in its bplustree package for splicing keys
// and children.
func insertAt[T any](s []T, i int, elem T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, elem)
	out = append(out, s[i:]...)
	return out
}

// childIndex is the single child-selection rule shared by insert descent
// and scan descent (SPEC_FULL.md §D.5, resolving spec.md §9's navigator
// question): the smallest index i with node.key(i) > key, or the last
// populated child if none exists. Per the node's separator invariant, all
// keys reachable through children[i] are < node.key(i), and all keys
// reachable through children[i+1] are >= node.key(i).
func childIndex(node nonLeafView, key int32) int {
	n := node.numKeys()
	for i := 0; i < n; i++ {
		if node.key(i) > key {
			return i
		}
	}
	return n
}

// insertEntryInNonLeaf inserts a new separator key and its right child
// into node, which must not be full. It finds the first index i with
// node.key(i) >= key, shifts keys[i:] and children[i+1:] right by one, and
// installs key at keys[i] and childPageId at children[i+1] (spec.md §4.3).
func insertEntryInNonLeaf(node nonLeafView, key int32, childPageId diskfile.PageID) {
	n := node.numKeys()
	i := 0
	for i < n && node.key(i) < key {
		i++
	}
	for j := n; j > i; j-- {
		node.setKey(j, node.key(j-1))
	}
	for j := n + 1; j > i+1; j-- {
		node.setChild(j, node.child(j-1))
	}
	node.setKey(i, key)
	node.setChild(i+1, childPageId)
	node.setNumKeys(n + 1)
}

// splitNonLeafNode splits a full non-leaf node in two, removing the
// median separator key rather than copying it into either half (spec.md
// §9's design note: a non-leaf key is a pure separator with no associated
// data, so unlike a leaf split it must not be duplicated on both sides of
// the split). The removed median is returned as the key to promote into
// the parent, alongside the new right sibling's page id.
//
// The new (key, childPageId) pair is folded into the node's existing
// ordering before the split point is chosen, via the same scratch-array
// approach as insertEntryInNonLeaf but computed over Go slices since the
// page itself has no room for an (N+1)-th key while full.
func (t *Tree) splitNonLeafNode(leftID diskfile.PageID, left nonLeafView, key int32, childPageId diskfile.PageID) (diskfile.PageID, int32, error) {
	n := left.numKeys()

	keys := make([]int32, n)
	children := make([]diskfile.PageID, n+1)
	for i := 0; i < n; i++ {
		keys[i] = left.key(i)
	}
	for i := 0; i <= n; i++ {
		children[i] = left.child(i)
	}

	i := 0
	for i < n && keys[i] < key {
		i++
	}
	keys = insertAt(keys, i, key)
	children = insertAt(children, i+1, childPageId)

	mid := (n + 1) / 2
	promoted := keys[mid]

	leftKeys, leftChildren := keys[:mid], children[:mid+1]
	rightKeys, rightChildren := keys[mid+1:], children[mid+1:]

	rightID, rightBuf, err := t.bp.AllocPage()
	if err != nil {
		return 0, 0, err
	}
	right := newNonLeafView(rightBuf)
	right.init(left.level())
	for idx, k := range rightKeys {
		right.setKey(idx, k)
	}
	for idx, c := range rightChildren {
		right.setChild(idx, c)
	}
	right.setNumKeys(len(rightKeys))

	level := left.level()
	left.init(level)
	for idx, k := range leftKeys {
		left.setKey(idx, k)
	}
	for idx, c := range leftChildren {
		left.setChild(idx, c)
	}
	left.setNumKeys(len(leftKeys))

	if err := t.bp.UnpinPage(rightID, true); err != nil {
		return 0, 0, err
	}
	return rightID, promoted, nil
}
