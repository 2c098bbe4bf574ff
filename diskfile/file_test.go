package diskfile

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestOpenReportsNewVsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	df, isNew, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !isNew {
		t.Error("expected isNew=true for a file that did not exist")
	}
	if err := df.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	df2, isNew2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer df2.Close()
	if isNew2 {
		t.Error("expected isNew=false on reopen")
	}
}

func TestAllocPageNumbersFromOne(t *testing.T) {
	df, _, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer df.Close()

	for want := PageID(1); want <= 3; want++ {
		if got := df.AllocPage(); got != want {
			t.Errorf("AllocPage() = %d, want %d", got, want)
		}
	}
	if got := df.PageCount(); got != 3 {
		t.Errorf("PageCount() = %d, want 3", got)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	df, _, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer df.Close()

	id := df.AllocPage()
	want := make([]byte, PageSize)
	copy(want, []byte("hello page"))

	if err := df.WritePage(id, want); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	got, err := df.ReadPage(id)
	if err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	if !bytes.Equal(want, got) {
		t.Error("read data does not match what was written")
	}
}

func TestReadPageBeyondEOFIsZeroFilled(t *testing.T) {
	df, _, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer df.Close()

	id := df.AllocPage() // never flushed
	got, err := df.ReadPage(id)
	if err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	for i, b := range got {
		if b != 0 {
			t.Fatalf("byte %d is %d, want 0 (page never written)", i, b)
		}
	}
}

func TestWritePageRejectsWrongSize(t *testing.T) {
	df, _, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer df.Close()

	id := df.AllocPage()
	if err := df.WritePage(id, make([]byte, PageSize-1)); err == nil {
		t.Error("expected an error writing a short page")
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	df, _, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id := df.AllocPage()
	want := make([]byte, PageSize)
	copy(want, []byte("persisted"))
	if err := df.WritePage(id, want); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	if err := df.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	df2, isNew, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer df2.Close()
	if isNew {
		t.Fatal("expected isNew=false")
	}
	got, err := df2.ReadPage(id)
	if err != nil {
		t.Fatalf("ReadPage after reopen: %v", err)
	}
	if !bytes.Equal(want, got) {
		t.Error("data did not survive close/reopen")
	}
	if got := df2.PageCount(); got != 1 {
		t.Errorf("PageCount() after reopen = %d, want 1", got)
	}
}
