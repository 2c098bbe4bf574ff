package btree

import (
	"testing"

	"github.com/Sripradha-karkala/BtreeIndex/buffer"
	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
)

// newTreeForNodeOpsTest builds a Tree backed by a real buffer pool, with
// no meta/root pages of its own — just enough to let splitLeafNode and
// splitNonLeafNode allocate new pages through t.bp.
func newTreeForNodeOpsTest(t *testing.T) *Tree {
	t.Helper()
	df, _, err := diskfile.Open(t.TempDir() + "/nodeops.db")
	if err != nil {
		t.Fatalf("diskfile.Open: %v", err)
	}
	t.Cleanup(func() { df.Close() })
	bp, err := buffer.New(df, buffer.Config{Capacity: 16})
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}
	return &Tree{bp: bp}
}

func TestInsertEntryInNonLeafAppendsAtEnd(t *testing.T) {
	buf := make([]byte, diskfile.PageSize)
	nv := newNonLeafView(buf)
	nv.init(0)
	nv.setChild(0, 100)
	nv.setNumKeys(0)

	insertEntryInNonLeaf(nv, 10, 101)
	insertEntryInNonLeaf(nv, 20, 102)
	insertEntryInNonLeaf(nv, 5, 99)

	if nv.numKeys() != 3 {
		t.Fatalf("numKeys() = %d, want 3", nv.numKeys())
	}
	wantKeys := []int32{5, 10, 20}
	wantChildren := []diskfile.PageID{100, 99, 101, 102}
	for i, k := range wantKeys {
		if got := nv.key(i); got != k {
			t.Errorf("key(%d) = %d, want %d", i, got, k)
		}
	}
	for i, c := range wantChildren {
		if got := nv.child(i); got != c {
			t.Errorf("child(%d) = %d, want %d", i, got, c)
		}
	}
}

func TestSplitNonLeafNodeRemovesMedianRatherThanCopyingIt(t *testing.T) {
	tree := newTreeForNodeOpsTest(t)

	leftID, buf, err := tree.bp.AllocPage()
	if err != nil {
		t.Fatalf("AllocPage: %v", err)
	}
	left := newNonLeafView(buf)
	left.init(1)
	for i := 0; i < NonLeafFanout; i++ {
		left.setKey(i, int32(i))
	}
	for i := 0; i <= NonLeafFanout; i++ {
		left.setChild(i, diskfile.PageID(1000+i))
	}
	left.setNumKeys(NonLeafFanout)

	newKey := int32(NonLeafFanout) // goes after every existing key
	newChild := diskfile.PageID(9999)
	rightID, promoted, err := tree.splitNonLeafNode(leftID, left, newKey, newChild)
	if err != nil {
		t.Fatalf("splitNonLeafNode: %v", err)
	}

	rightBuf, err := tree.bp.ReadPage(rightID)
	if err != nil {
		t.Fatalf("ReadPage(right): %v", err)
	}
	right := newNonLeafView(rightBuf)

	total := left.numKeys() + right.numKeys()
	// The original N keys plus the new one is N+1 total entries; exactly
	// one of them — the median — is promoted and must not also appear as
	// a key in either child.
	if total != NonLeafFanout {
		t.Errorf("left.numKeys()+right.numKeys() = %d, want %d (median removed, not duplicated)", total, NonLeafFanout)
	}
	for i := 0; i < left.numKeys(); i++ {
		if left.key(i) == promoted {
			t.Errorf("promoted key %d still appears in the left half at index %d", promoted, i)
		}
	}
	for i := 0; i < right.numKeys(); i++ {
		if right.key(i) == promoted {
			t.Errorf("promoted key %d still appears in the right half at index %d", promoted, i)
		}
	}
	if left.numKeys() < 1 || right.numKeys() < 1 {
		t.Error("both halves of a split must be non-empty")
	}
	if right.level() != left.level() {
		t.Errorf("right.level() = %d, want %d (inherited from left)", right.level(), left.level())
	}

	// Every key in left must be less than promoted, and every key in
	// right must be greater — the split must not scramble ordering.
	for i := 0; i < left.numKeys(); i++ {
		if left.key(i) >= promoted {
			t.Errorf("left key %d at index %d is not less than promoted key %d", left.key(i), i, promoted)
		}
	}
	for i := 0; i < right.numKeys(); i++ {
		if right.key(i) <= promoted {
			t.Errorf("right key %d at index %d is not greater than promoted key %d", right.key(i), i, promoted)
		}
	}
}
