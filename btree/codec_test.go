package btree

import (
	"testing"

	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
	"github.com/Sripradha-karkala/BtreeIndex/types"
)

func TestFanoutConstantsFitExactlyInOnePage(t *testing.T) {
	if got := leafHeaderSize + LeafFanout*leafEntrySize; got > diskfile.PageSize {
		t.Errorf("leaf layout needs %d bytes, page is only %d", got, diskfile.PageSize)
	}
	if got := nonLeafHeaderSize + NonLeafFanout*4 + (NonLeafFanout+1)*4; got > diskfile.PageSize {
		t.Errorf("non-leaf layout needs %d bytes, page is only %d", got, diskfile.PageSize)
	}
}

func TestMetaViewRoundTripAndChecksum(t *testing.T) {
	buf := make([]byte, diskfile.PageSize)
	m := newMetaView(buf)
	m.init("orders", 12, types.Integer, diskfile.PageID(7))

	if got := m.relName(); got != "orders" {
		t.Errorf("relName() = %q, want %q", got, "orders")
	}
	if got := m.attrByteOffset(); got != 12 {
		t.Errorf("attrByteOffset() = %d, want 12", got)
	}
	if got := m.attrType(); got != types.Integer {
		t.Errorf("attrType() = %v, want Integer", got)
	}
	if got := m.rootPageNo(); got != 7 {
		t.Errorf("rootPageNo() = %d, want 7", got)
	}
	if !m.isRootLeaf() {
		t.Error("a freshly initialized meta page should report isRootLeaf=true")
	}
	if !m.validateChecksum() {
		t.Error("checksum should validate right after init")
	}

	buf[0] ^= 0xFF
	if m.validateChecksum() {
		t.Error("checksum should no longer validate after corrupting a byte")
	}
}

func TestLeafViewEntriesAndSentinelClearing(t *testing.T) {
	buf := make([]byte, diskfile.PageSize)
	lv := newLeafView(buf)
	lv.init()

	lv.setEntry(0, 42, types.RecordID{PageNumber: 3, SlotIndex: 1})
	lv.setNumKeys(1)

	if got := lv.key(0); got != 42 {
		t.Errorf("key(0) = %d, want 42", got)
	}
	rid := lv.rid(0)
	if rid.PageNumber != 3 || rid.SlotIndex != 1 {
		t.Errorf("rid(0) = %+v, want {3 1}", rid)
	}

	lv.clearEntry(0)
	if !lv.rid(0).IsNull() {
		t.Error("clearEntry should leave the sentinel null rid behind")
	}
}

func TestNonLeafViewChildIndexing(t *testing.T) {
	buf := make([]byte, diskfile.PageSize)
	nv := newNonLeafView(buf)
	nv.init(1)

	nv.setKey(0, 10)
	nv.setKey(1, 20)
	nv.setChild(0, 100)
	nv.setChild(1, 101)
	nv.setChild(2, 102)
	nv.setNumKeys(2)

	cases := []struct {
		key  int32
		want int
	}{
		{5, 0},
		{10, 1}, // equal to a separator descends right, per the invariant
		{15, 1},
		{25, 2},
	}
	for _, c := range cases {
		if got := childIndex(nv, c.key); got != c.want {
			t.Errorf("childIndex(%d) = %d, want %d", c.key, got, c.want)
		}
	}
}
