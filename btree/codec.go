package btree

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
	"github.com/Sripradha-karkala/BtreeIndex/types"
)

// Page codec: reinterpret a raw page buffer as one of three typed node
// views (meta, leaf, non-leaf) with no allocation. Every accessor below
// reads or writes directly into the caller-supplied []byte — the view
// types hold no copy of the data, only fixed byte offsets into it
// (spec.md §4.1, §9 "Reinterpret-as-node over raw page bytes").
//
// The codec does not validate which kind a page actually holds; the
// caller always knows from context (the meta page is always the file's
// first page; a non-leaf's level field says whether its children are
// leaves).

const (
	leafKind    = 1
	nonLeafKind = 2
	metaKind    = 3
)

// ---- meta page ----

const (
	metaOffMagic          = 0
	metaOffAttrByteOffset = 4
	metaOffAttrType       = 8
	metaOffIsRootLeaf     = 9
	metaOffRootPageNo     = 10
	metaOffRelNameLen     = 14
	metaOffRelName        = 16
	maxRelNameLen         = 100
	metaOffChecksum       = metaOffRelName + maxRelNameLen // 116
	metaSize              = metaOffChecksum + 8            // 124

	metaMagic uint32 = 0x42504c54 // "BPLT"
)

type metaView struct{ data []byte }

func newMetaView(data []byte) metaView { return metaView{data: data} }

func (m metaView) init(relName string, attrByteOffset int32, attrType types.AttrType, rootPageNo diskfile.PageID) {
	for i := 0; i < metaSize; i++ {
		m.data[i] = 0
	}
	binary.LittleEndian.PutUint32(m.data[metaOffMagic:], metaMagic)
	binary.LittleEndian.PutUint32(m.data[metaOffAttrByteOffset:], uint32(attrByteOffset))
	m.data[metaOffAttrType] = byte(attrType)
	m.setIsRootLeaf(true)
	m.setRootPageNo(rootPageNo)
	m.setRelName(relName)
	m.writeChecksum()
}

func (m metaView) attrByteOffset() int32 {
	return int32(binary.LittleEndian.Uint32(m.data[metaOffAttrByteOffset:]))
}

func (m metaView) attrType() types.AttrType { return types.AttrType(m.data[metaOffAttrType]) }

func (m metaView) isRootLeaf() bool { return m.data[metaOffIsRootLeaf] == 1 }

func (m metaView) setIsRootLeaf(v bool) {
	if v {
		m.data[metaOffIsRootLeaf] = 1
	} else {
		m.data[metaOffIsRootLeaf] = 0
	}
}

func (m metaView) rootPageNo() diskfile.PageID {
	return diskfile.PageID(binary.LittleEndian.Uint32(m.data[metaOffRootPageNo:]))
}

func (m metaView) setRootPageNo(id diskfile.PageID) {
	binary.LittleEndian.PutUint32(m.data[metaOffRootPageNo:], uint32(id))
}

func (m metaView) relName() string {
	n := binary.LittleEndian.Uint16(m.data[metaOffRelNameLen:])
	return string(m.data[metaOffRelName : metaOffRelName+int(n)])
}

func (m metaView) setRelName(name string) {
	if len(name) > maxRelNameLen {
		name = name[:maxRelNameLen]
	}
	binary.LittleEndian.PutUint16(m.data[metaOffRelNameLen:], uint16(len(name)))
	copy(m.data[metaOffRelName:metaOffRelName+maxRelNameLen], make([]byte, maxRelNameLen))
	copy(m.data[metaOffRelName:], name)
}

func (m metaView) checksum() uint64 {
	return binary.LittleEndian.Uint64(m.data[metaOffChecksum:])
}

func (m metaView) computeChecksum() uint64 {
	return xxhash.Sum64(m.data[0:metaOffChecksum])
}

func (m metaView) writeChecksum() {
	binary.LittleEndian.PutUint64(m.data[metaOffChecksum:], m.computeChecksum())
}

func (m metaView) validateChecksum() bool {
	return m.checksum() == m.computeChecksum()
}

// ---- leaf node ----

const (
	leafOffKind           = 0
	leafOffNumKeys        = 1
	leafOffRightSibPageNo = 3
	leafHeaderSize        = 7

	leafEntrySize = 10 // key int32(4) + rid.PageNumber uint32(4) + rid.SlotIndex uint16(2)
)

// LeafFanout is the maximum number of (key, rid) entries a leaf page can
// hold, derived from page size and entry size (spec.md §4.1).
const LeafFanout = (diskfile.PageSize - leafHeaderSize) / leafEntrySize

type leafView struct{ data []byte }

func newLeafView(data []byte) leafView { return leafView{data: data} }

func (lv leafView) init() {
	for i := 0; i < leafHeaderSize+LeafFanout*leafEntrySize; i++ {
		lv.data[i] = 0
	}
	lv.data[leafOffKind] = leafKind
}

func (lv leafView) numKeys() int {
	return int(binary.LittleEndian.Uint16(lv.data[leafOffNumKeys:]))
}

func (lv leafView) setNumKeys(n int) {
	binary.LittleEndian.PutUint16(lv.data[leafOffNumKeys:], uint16(n))
}

func (lv leafView) rightSib() diskfile.PageID {
	return diskfile.PageID(binary.LittleEndian.Uint32(lv.data[leafOffRightSibPageNo:]))
}

func (lv leafView) setRightSib(id diskfile.PageID) {
	binary.LittleEndian.PutUint32(lv.data[leafOffRightSibPageNo:], uint32(id))
}

func (lv leafView) entryOffset(i int) int { return leafHeaderSize + i*leafEntrySize }

func (lv leafView) key(i int) int32 {
	off := lv.entryOffset(i)
	return int32(binary.LittleEndian.Uint32(lv.data[off:]))
}

func (lv leafView) rid(i int) types.RecordID {
	off := lv.entryOffset(i)
	return types.RecordID{
		PageNumber: binary.LittleEndian.Uint32(lv.data[off+4:]),
		SlotIndex:  binary.LittleEndian.Uint16(lv.data[off+8:]),
	}
}

func (lv leafView) setEntry(i int, key int32, rid types.RecordID) {
	off := lv.entryOffset(i)
	binary.LittleEndian.PutUint32(lv.data[off:], uint32(key))
	binary.LittleEndian.PutUint32(lv.data[off+4:], rid.PageNumber)
	binary.LittleEndian.PutUint16(lv.data[off+8:], rid.SlotIndex)
}

func (lv leafView) clearEntry(i int) {
	off := lv.entryOffset(i)
	for j := 0; j < leafEntrySize; j++ {
		lv.data[off+j] = 0
	}
}

// isFull reports whether the leaf has no unused trailing slot.
func (lv leafView) isFull() bool { return lv.numKeys() >= LeafFanout }

// ---- non-leaf node ----

const (
	nonLeafOffKind    = 0
	nonLeafOffLevel   = 1
	nonLeafOffNumKeys = 2
	nonLeafHeaderSize = 4
)

// NonLeafFanout is the maximum number of separator keys a non-leaf page
// can hold (it therefore has up to NonLeafFanout+1 children), derived from
// page size and entry size (spec.md §4.1).
const NonLeafFanout = (diskfile.PageSize - nonLeafHeaderSize - 4) / 8

type nonLeafView struct{ data []byte }

func newNonLeafView(data []byte) nonLeafView { return nonLeafView{data: data} }

func (nv nonLeafView) init(level uint8) {
	end := nonLeafHeaderSize + NonLeafFanout*4 + (NonLeafFanout+1)*4
	for i := 0; i < end; i++ {
		nv.data[i] = 0
	}
	nv.data[nonLeafOffKind] = nonLeafKind
	nv.data[nonLeafOffLevel] = level
}

func (nv nonLeafView) level() uint8 { return nv.data[nonLeafOffLevel] }

func (nv nonLeafView) numKeys() int {
	return int(binary.LittleEndian.Uint16(nv.data[nonLeafOffNumKeys:]))
}

func (nv nonLeafView) setNumKeys(n int) {
	binary.LittleEndian.PutUint16(nv.data[nonLeafOffNumKeys:], uint16(n))
}

func (nv nonLeafView) keyOffset(i int) int { return nonLeafHeaderSize + i*4 }

func (nv nonLeafView) childrenStart() int { return nonLeafHeaderSize + NonLeafFanout*4 }

func (nv nonLeafView) childOffset(i int) int { return nv.childrenStart() + i*4 }

func (nv nonLeafView) key(i int) int32 {
	return int32(binary.LittleEndian.Uint32(nv.data[nv.keyOffset(i):]))
}

func (nv nonLeafView) setKey(i int, k int32) {
	binary.LittleEndian.PutUint32(nv.data[nv.keyOffset(i):], uint32(k))
}

func (nv nonLeafView) child(i int) diskfile.PageID {
	return diskfile.PageID(binary.LittleEndian.Uint32(nv.data[nv.childOffset(i):]))
}

func (nv nonLeafView) setChild(i int, id diskfile.PageID) {
	binary.LittleEndian.PutUint32(nv.data[nv.childOffset(i):], uint32(id))
}

// isFull reports whether the node has no unused trailing key slot.
func (nv nonLeafView) isFull() bool { return nv.numKeys() >= NonLeafFanout }
