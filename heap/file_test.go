package heap

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Sripradha-karkala/BtreeIndex/buffer"
	"github.com/Sripradha-karkala/BtreeIndex/types"
)

func openTestHeap(t *testing.T) *File {
	t.Helper()
	hf, err := Open(filepath.Join(t.TempDir(), "test.heap"), buffer.Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { hf.Close() })
	return hf
}

func TestInsertAndGetRecordRoundTrip(t *testing.T) {
	hf := openTestHeap(t)

	rid, err := hf.InsertRecord([]byte("row one"))
	if err != nil {
		t.Fatalf("InsertRecord: %v", err)
	}
	got, err := hf.GetRecordAt(rid)
	if err != nil {
		t.Fatalf("GetRecordAt: %v", err)
	}
	if !bytes.Equal(got, []byte("row one")) {
		t.Errorf("GetRecordAt = %q, want %q", got, "row one")
	}
}

func TestInsertSpillsOntoNewPageWhenFull(t *testing.T) {
	hf := openTestHeap(t)

	row := bytes.Repeat([]byte("x"), 500)
	var rids []types.RecordID
	for i := 0; i < 20; i++ {
		rid, err := hf.InsertRecord(row)
		if err != nil {
			t.Fatalf("InsertRecord %d: %v", i, err)
		}
		rids = append(rids, rid)
	}

	seenPages := map[uint32]bool{}
	for _, rid := range rids {
		seenPages[rid.PageNumber] = true
	}
	if len(seenPages) < 2 {
		t.Errorf("expected records to span multiple pages, got %d distinct page(s)", len(seenPages))
	}
	for i, rid := range rids {
		got, err := hf.GetRecordAt(rid)
		if err != nil {
			t.Fatalf("GetRecordAt %d: %v", i, err)
		}
		if !bytes.Equal(got, row) {
			t.Errorf("record %d mismatch", i)
		}
	}
}

func TestScannerVisitsEveryRecordInOrder(t *testing.T) {
	hf := openTestHeap(t)

	want := [][]byte{[]byte("alpha"), []byte("bravo"), []byte("charlie")}
	for _, w := range want {
		if _, err := hf.InsertRecord(w); err != nil {
			t.Fatalf("InsertRecord: %v", err)
		}
	}

	s := NewScanner(hf)
	defer s.Close()

	var got [][]byte
	for {
		_, err := s.ScanNext()
		if err != nil {
			if errors.Is(err, ErrEndOfFile) {
				break
			}
			t.Fatalf("ScanNext: %v", err)
		}
		got = append(got, append([]byte(nil), s.GetRecord()...))
	}

	if len(got) != len(want) {
		t.Fatalf("scanned %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("record %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScannerOnEmptyHeapIsImmediatelyDone(t *testing.T) {
	hf := openTestHeap(t)
	s := NewScanner(hf)
	defer s.Close()

	if _, err := s.ScanNext(); !errors.Is(err, ErrEndOfFile) {
		t.Errorf("ScanNext on empty heap = %v, want ErrEndOfFile", err)
	}
}
