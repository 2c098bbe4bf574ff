// Package btree is the disk-resident B+ tree secondary index core: the
// on-page node layout (codec.go), the node-level insert/split operators
// (node_ops.go, nonleaf_ops.go), the recursive insert-with-split tree
// navigator (navigate.go), the ordered range-scan cursor (cursor.go), the
// bulk loader (bulkload.go), and open-or-create lifecycle (lifecycle.go).
//
// Grounded throughout on DaemonDB's
// storage_engine/access/indexfile_manager/bplustree (insertion.go,
// find_leaf.go, split_leaf.go, split_internal.go, parent_insert.go,
// new_root.go, iterator.go), generalized from that package's
// variable-length byte-slice keys to the fixed-offset scalar-attribute,
// fixed-slot-array design spec.md §3–§4 specify, and corrected per
// spec.md §9's design notes (remove-and-promote on non-leaf split,
// persisted isRootLeaf flag, one shared child-selection rule for both
// insert descent and scan descent).
package btree

import (
	"github.com/Sripradha-karkala/BtreeIndex/btlog"
	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
	"github.com/Sripradha-karkala/BtreeIndex/types"
)

// BufferPool is the external collaborator contract spec.md §6.2 names.
// *buffer.Pool satisfies it structurally.
type BufferPool interface {
	AllocPage() (diskfile.PageID, []byte, error)
	ReadPage(diskfile.PageID) ([]byte, error)
	UnpinPage(diskfile.PageID, bool) error
	FlushFile() error
	GetFirstPageNo() diskfile.PageID
	Close() error
}

// RelationScanner is the external collaborator contract spec.md §6.3
// names. *heap.Scanner satisfies it structurally.
type RelationScanner interface {
	ScanNext() (types.RecordID, error)
	GetRecord() []byte
}

// Tree is a B+ tree secondary index over one fixed-offset scalar
// attribute of a base relation. It is not safe for concurrent use — the
// caller serializes, per spec.md §5.
type Tree struct {
	bp  BufferPool
	df  *diskfile.File // non-nil only when OpenIndex opened the file itself
	log btlog.Logger

	relationName   string
	attrByteOffset int32
	attrType       types.AttrType

	metaPageNum diskfile.PageID
	rootPageNum diskfile.PageID
	isRootLeaf  bool

	// cursor state — at most one active scan at a time (spec.md §3).
	scanActive  bool
	lowVal      int32
	lowOp       types.Op
	highVal     int32
	highOp      types.Op
	curLeafPage diskfile.PageID
	curLeafData []byte
	nextEntry   int
}

// RelationName returns the name of the relation this index is built over.
func (t *Tree) RelationName() string { return t.relationName }

// AttrByteOffset returns the configured attribute byte offset.
func (t *Tree) AttrByteOffset() int32 { return t.attrByteOffset }

// AttrType returns the configured attribute type.
func (t *Tree) AttrType() types.AttrType { return t.attrType }

// RootPageNum returns the current root page id — exposed for inspection
// tooling (cmd/idxinspect), not part of the core contract.
func (t *Tree) RootPageNum() diskfile.PageID { return t.rootPageNum }

// IsRootLeaf reports whether the current root is itself a leaf.
func (t *Tree) IsRootLeaf() bool { return t.isRootLeaf }
