package btree

import (
	"fmt"
	"path/filepath"

	"github.com/Sripradha-karkala/BtreeIndex/btlog"
	"github.com/Sripradha-karkala/BtreeIndex/buffer"
	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
	"github.com/Sripradha-karkala/BtreeIndex/types"
)

// IndexName is the deterministic index file name for a given relation and
// attribute offset, per spec.md §4.7: "<relation>.<offset>".
func IndexName(relationName string, attrByteOffset int32) string {
	return fmt.Sprintf("%s.%d", relationName, attrByteOffset)
}

// OpenIndex opens the index for relationName's attribute at attrByteOffset,
// creating it under baseDir if it does not already exist. When the index
// file is newly created and scanner is non-nil, the tree is bulk-loaded
// from scanner before OpenIndex returns (spec.md §4.5, §4.7); pass a nil
// scanner to create an empty index (tests, or when the caller drives
// InsertEntry itself).
//
// It returns the open tree and the index name it was opened under, the
// pair the public API in spec.md §6.4 names.
func OpenIndex(baseDir, relationName string, attrByteOffset int32, attrType types.AttrType, cfg buffer.Config, log btlog.Logger, scanner RelationScanner) (*Tree, string, error) {
	if log == nil {
		log = btlog.Discard{}
	}
	indexName := IndexName(relationName, attrByteOffset)
	path := filepath.Join(baseDir, indexName+".idx")

	df, isNew, err := diskfile.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("btree: open %s: %w", path, err)
	}
	bp, err := buffer.New(df, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("btree: create buffer pool for %s: %w", path, err)
	}

	t, err := openTree(bp, relationName, attrByteOffset, attrType, isNew, log)
	if err != nil {
		return nil, "", err
	}
	t.df = df

	if isNew && scanner != nil {
		if err := t.BulkLoad(scanner); err != nil {
			return nil, "", err
		}
	}
	return t, indexName, nil
}

// openTree binds a Tree to an already-open buffer pool, either
// initializing a brand new index's meta and root pages or reading an
// existing one back and validating its checksum.
func openTree(bp BufferPool, relationName string, attrByteOffset int32, attrType types.AttrType, isNew bool, log btlog.Logger) (*Tree, error) {
	t := &Tree{bp: bp, log: log}

	if isNew {
		metaID, metaBuf, err := bp.AllocPage()
		if err != nil {
			return nil, fmt.Errorf("btree: allocate meta page: %w", err)
		}
		rootID, rootBuf, err := bp.AllocPage()
		if err != nil {
			return nil, fmt.Errorf("btree: allocate root page: %w", err)
		}
		leaf := newLeafView(rootBuf)
		leaf.init()
		if err := bp.UnpinPage(rootID, true); err != nil {
			return nil, err
		}

		meta := newMetaView(metaBuf)
		meta.init(relationName, attrByteOffset, attrType, rootID)
		if err := bp.UnpinPage(metaID, true); err != nil {
			return nil, err
		}

		t.relationName = relationName
		t.attrByteOffset = attrByteOffset
		t.attrType = attrType
		t.metaPageNum = metaID
		t.rootPageNum = rootID
		t.isRootLeaf = true
		return t, nil
	}

	metaID := bp.GetFirstPageNo()
	metaBuf, err := bp.ReadPage(metaID)
	if err != nil {
		return nil, fmt.Errorf("btree: read meta page: %w", err)
	}
	meta := newMetaView(metaBuf)
	if !meta.validateChecksum() {
		bp.UnpinPage(metaID, false)
		return nil, ErrChecksumMismatch
	}

	t.relationName = meta.relName()
	t.attrByteOffset = meta.attrByteOffset()
	t.attrType = meta.attrType()
	t.rootPageNum = meta.rootPageNo()
	t.isRootLeaf = meta.isRootLeaf()
	t.metaPageNum = metaID
	if err := bp.UnpinPage(metaID, false); err != nil {
		return nil, err
	}
	return t, nil
}

// writeMetaRoot persists a new root page number and leaf flag into the
// meta page and recomputes its checksum — called whenever the root
// changes (makeNewRootNode).
func (t *Tree) writeMetaRoot(rootPageNo diskfile.PageID, isRootLeaf bool) error {
	buf, err := t.bp.ReadPage(t.metaPageNum)
	if err != nil {
		return err
	}
	meta := newMetaView(buf)
	meta.setRootPageNo(rootPageNo)
	meta.setIsRootLeaf(isRootLeaf)
	meta.writeChecksum()
	return t.bp.UnpinPage(t.metaPageNum, true)
}

// Close flushes all dirty pages and releases the index's resources,
// including the underlying file handle when OpenIndex opened it.
func (t *Tree) Close() error {
	if err := t.bp.Close(); err != nil {
		return err
	}
	if t.df != nil {
		return t.df.Close()
	}
	return nil
}
