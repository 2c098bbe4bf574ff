package heap

import (
	"encoding/binary"
	"fmt"

	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
)

// Heap page binary layout (all values little-endian), grounded on
// DaemonDB's storage_engine/access/heapfile_manager/heap_page.go, trimmed
// to what a bulk-load fixture and a relation scanner need — no LSN, no
// per-page file/page-number stamp, no tombstone reuse.
//
//	Offset  Size  Field
//	───────────────────────────────────────
//	0       2     RecordEndPtr   — first free byte after the last record
//	2       2     SlotRegionStart — first byte of the slot directory
//	4       2     SlotCount      — number of slots (== number of records)
//	6       2     reserved
//	───────────────────────────────────────
//	8             headerSize
//
// Records grow forward from headerSize; the slot directory grows backward
// from diskfile.PageSize. A slot is 4 bytes: [ Offset uint16 ][ Length uint16 ].
const (
	offRecordEndPtr    = 0
	offSlotRegionStart = 2
	offSlotCount       = 4

	headerSize = 8
	slotSize   = 4
)

func initPage(data []byte) {
	for i := range data {
		data[i] = 0
	}
	binary.LittleEndian.PutUint16(data[offRecordEndPtr:], headerSize)
	binary.LittleEndian.PutUint16(data[offSlotRegionStart:], diskfile.PageSize)
	binary.LittleEndian.PutUint16(data[offSlotCount:], 0)
}

func recordEndPtr(data []byte) uint16    { return binary.LittleEndian.Uint16(data[offRecordEndPtr:]) }
func slotRegionStart(data []byte) uint16 { return binary.LittleEndian.Uint16(data[offSlotRegionStart:]) }
func slotCount(data []byte) uint16       { return binary.LittleEndian.Uint16(data[offSlotCount:]) }

func setRecordEndPtr(data []byte, v uint16)    { binary.LittleEndian.PutUint16(data[offRecordEndPtr:], v) }
func setSlotRegionStart(data []byte, v uint16) { binary.LittleEndian.PutUint16(data[offSlotRegionStart:], v) }
func setSlotCount(data []byte, v uint16)       { binary.LittleEndian.PutUint16(data[offSlotCount:], v) }

func freeSpace(data []byte) int {
	return int(slotRegionStart(data)) - int(recordEndPtr(data)) - slotSize
}

func writeSlot(data []byte, idx uint16, offset, length uint16) {
	pos := diskfile.PageSize - int(idx+1)*slotSize
	binary.LittleEndian.PutUint16(data[pos:], offset)
	binary.LittleEndian.PutUint16(data[pos+2:], length)
}

func readSlot(data []byte, idx uint16) (offset, length uint16) {
	pos := diskfile.PageSize - int(idx+1)*slotSize
	return binary.LittleEndian.Uint16(data[pos:]), binary.LittleEndian.Uint16(data[pos+2:])
}

// insertRecord writes rowData into a page that initPage has already
// stamped, returning its slot index. Returns an error if there is not
// enough free space; the caller must then try a different page.
func insertRecord(data []byte, rowData []byte) (uint16, error) {
	n := uint16(len(rowData))
	if n == 0 {
		return 0, fmt.Errorf("heap: record must not be empty")
	}
	if freeSpace(data) < int(n) {
		return 0, fmt.Errorf("heap: need %d bytes, only %d available", n, freeSpace(data))
	}

	offset := recordEndPtr(data)
	copy(data[offset:], rowData)
	setRecordEndPtr(data, offset+n)

	idx := slotCount(data)
	writeSlot(data, idx, offset, n)
	setSlotCount(data, idx+1)
	setSlotRegionStart(data, slotRegionStart(data)-slotSize)

	return idx, nil
}

// getRecord returns a copy of the record at slotIdx.
func getRecord(data []byte, slotIdx uint16) ([]byte, error) {
	if slotIdx >= slotCount(data) {
		return nil, fmt.Errorf("heap: slot %d out of range (count=%d)", slotIdx, slotCount(data))
	}
	offset, length := readSlot(data, slotIdx)
	out := make([]byte, length)
	copy(out, data[offset:offset+length])
	return out, nil
}
