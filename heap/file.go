// Package heap is the minimal heap file and relation scanner the B+ tree
// core consumes as an out-of-scope collaborator (spec.md §6.3). It exists
// to drive bulk load and to give the index something real to point at in
// tests — it is not a general-purpose storage engine.
//
// Grounded on DaemonDB's storage_engine/access/heapfile_manager, trimmed
// to fixed-offset scalar attributes and insert-only access (no update, no
// delete — matching this module's own insert-only scope for the index
// that sits on top of it).
package heap

import (
	"fmt"

	"github.com/Sripradha-karkala/BtreeIndex/buffer"
	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
	"github.com/Sripradha-karkala/BtreeIndex/types"
)

// File is an insert-only heap file: a sequence of fixed-size slotted
// pages, each holding as many rows as fit.
type File struct {
	df      *diskfile.File
	bp      *buffer.Pool
	current diskfile.PageID // last allocated page; 0 if none yet
}

// Open opens or creates the heap file at path.
func Open(path string, cfg buffer.Config) (*File, error) {
	df, isNew, err := diskfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("heap: open %s: %w", path, err)
	}
	bp, err := buffer.New(df, cfg)
	if err != nil {
		return nil, fmt.Errorf("heap: create buffer pool: %w", err)
	}

	hf := &File{df: df, bp: bp}
	if !isNew {
		hf.current = df.PageCount()
	}
	return hf, nil
}

// InsertRecord appends rowData to the heap file, allocating a new page
// if the current page has no room, and returns its RecordID.
func (hf *File) InsertRecord(rowData []byte) (types.RecordID, error) {
	if hf.current != 0 {
		data, err := hf.bp.ReadPage(hf.current)
		if err != nil {
			return types.RecordID{}, fmt.Errorf("heap: read current page: %w", err)
		}
		if freeSpace(data) >= len(rowData) {
			slot, err := insertRecord(data, rowData)
			if err != nil {
				hf.bp.UnpinPage(hf.current, false)
				return types.RecordID{}, err
			}
			if err := hf.bp.UnpinPage(hf.current, true); err != nil {
				return types.RecordID{}, err
			}
			return types.RecordID{PageNumber: uint32(hf.current), SlotIndex: slot}, nil
		}
		if err := hf.bp.UnpinPage(hf.current, false); err != nil {
			return types.RecordID{}, err
		}
	}

	id, data, err := hf.bp.AllocPage()
	if err != nil {
		return types.RecordID{}, fmt.Errorf("heap: allocate page: %w", err)
	}
	initPage(data)
	slot, err := insertRecord(data, rowData)
	if err != nil {
		hf.bp.UnpinPage(id, false)
		return types.RecordID{}, err
	}
	if err := hf.bp.UnpinPage(id, true); err != nil {
		return types.RecordID{}, err
	}
	hf.current = id
	return types.RecordID{PageNumber: uint32(id), SlotIndex: slot}, nil
}

// GetRecordAt returns a copy of the record rid points at.
func (hf *File) GetRecordAt(rid types.RecordID) ([]byte, error) {
	data, err := hf.bp.ReadPage(diskfile.PageID(rid.PageNumber))
	if err != nil {
		return nil, fmt.Errorf("heap: read page %d: %w", rid.PageNumber, err)
	}
	defer hf.bp.UnpinPage(diskfile.PageID(rid.PageNumber), false)
	return getRecord(data, rid.SlotIndex)
}

// Close flushes and closes the heap file.
func (hf *File) Close() error {
	if err := hf.bp.Close(); err != nil {
		return err
	}
	return hf.df.Close()
}

// ErrEndOfFile is returned by Scanner.ScanNext once every record has been
// visited (spec.md §6.3). It is an alias for types.ErrEndOfFile so the
// btree package's bulk loader can recognize end-of-scan without
// importing this package.
var ErrEndOfFile = types.ErrEndOfFile

// Scanner sequentially reads every record in a heap file, in page/slot
// order — the relation scanner contract spec.md §6.3 and the bulk loader
// §4.5 consume.
type Scanner struct {
	hf       *File
	lastPage diskfile.PageID
	page     diskfile.PageID
	slot     uint16
	data     []byte
	rid      types.RecordID
	record   []byte
}

// NewScanner opens a full-file scan over hf.
func NewScanner(hf *File) *Scanner {
	return &Scanner{hf: hf, page: 1, lastPage: hf.df.PageCount()}
}

// ScanNext advances to the next live record. It returns ErrEndOfFile once
// every page has been exhausted.
func (s *Scanner) ScanNext() (types.RecordID, error) {
	for {
		if s.page > s.lastPage {
			return types.RecordID{}, ErrEndOfFile
		}
		if s.data == nil {
			data, err := s.hf.bp.ReadPage(s.page)
			if err != nil {
				return types.RecordID{}, fmt.Errorf("heap scan: read page %d: %w", s.page, err)
			}
			s.data = data
			s.slot = 0
		}
		if s.slot >= slotCount(s.data) {
			s.hf.bp.UnpinPage(s.page, false)
			s.data = nil
			s.page++
			continue
		}

		rec, err := getRecord(s.data, s.slot)
		if err != nil {
			return types.RecordID{}, fmt.Errorf("heap scan: page %d slot %d: %w", s.page, s.slot, err)
		}
		rid := types.RecordID{PageNumber: uint32(s.page), SlotIndex: s.slot}
		s.slot++
		s.rid = rid
		s.record = rec
		return rid, nil
	}
}

// GetRecord returns the payload of the record ScanNext just returned.
func (s *Scanner) GetRecord() []byte { return s.record }

// Close releases any page the scanner is holding pinned.
func (s *Scanner) Close() {
	if s.data != nil {
		s.hf.bp.UnpinPage(s.page, false)
		s.data = nil
	}
}
