package btree

import (
	"errors"
	"fmt"

	"github.com/Sripradha-karkala/BtreeIndex/types"
)

// BulkLoad drives a full scan of scanner, the base relation's sequential
// scanner, and feeds every (attribute, rid) pair it produces through
// InsertEntry, terminating cleanly when the scan reports
// types.ErrEndOfFile and flushing the index's pages before returning
// (spec.md §4.5). A failure to read a record, or to extract its
// attribute, aborts the load and returns that error — the caller decides
// whether a partially-built index file is worth keeping or discarding.
func (t *Tree) BulkLoad(scanner RelationScanner) error {
	var n int
	for {
		rid, err := scanner.ScanNext()
		if err != nil {
			if errors.Is(err, types.ErrEndOfFile) {
				break
			}
			return fmt.Errorf("btree: bulk load scan: %w", err)
		}

		record := scanner.GetRecord()
		keyBytes, err := extractAttr(record, t.attrByteOffset, t.attrType)
		if err != nil {
			return fmt.Errorf("btree: bulk load: %w", err)
		}
		if err := t.InsertEntry(keyBytes, rid); err != nil {
			return fmt.Errorf("btree: bulk load insert: %w", err)
		}
		n++
		if n%bulkLoadLogInterval == 0 {
			t.log.Info("btree: bulk load progress", "relation", t.relationName, "records", n)
		}
	}
	t.log.Info("btree: bulk load complete", "relation", t.relationName, "records", n)
	return t.bp.FlushFile()
}

// bulkLoadLogInterval controls how often BulkLoad reports progress.
const bulkLoadLogInterval = 10000

// extractAttr slices the configured attribute's raw bytes out of a heap
// record. Only Integer is implemented (spec.md §4.1).
func extractAttr(record []byte, offset int32, attrType types.AttrType) ([]byte, error) {
	if attrType != types.Integer {
		return nil, ErrUnsupportedAttrType
	}
	end := int(offset) + 4
	if offset < 0 || end > len(record) {
		return nil, fmt.Errorf("attribute offset %d is out of bounds for a %d-byte record", offset, len(record))
	}
	return record[offset:end], nil
}
