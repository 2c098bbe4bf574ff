// Package types holds the scalar value vocabulary shared by the heap file
// and the B+ tree index: attribute types, the range-scan
// operator enum, and the record identifier that a leaf entry points at.
package types

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// AttrType names the scalar type of the attribute an index is built over.
// Only Integer is functional; Double and String are declared so that a
// meta page written by a future implementation round-trips its attribute
// type byte, but any operation against them returns ErrUnsupportedAttrType.
type AttrType uint8

const (
	Integer AttrType = iota
	Double
	String
)

func (t AttrType) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Double:
		return "Double"
	case String:
		return "String"
	default:
		return fmt.Sprintf("AttrType(%d)", uint8(t))
	}
}

// Op is a range-scan comparison operator.
type Op uint8

const (
	GT  Op = iota // strictly greater than
	GTE           // greater than or equal
	LT            // strictly less than
	LTE           // less than or equal
)

func (op Op) String() string {
	switch op {
	case GT:
		return "GT"
	case GTE:
		return "GTE"
	case LT:
		return "LT"
	case LTE:
		return "LTE"
	default:
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
}

// IsLowOp reports whether op is valid as a scan's low-bound operator.
func (op Op) IsLowOp() bool { return op == GT || op == GTE }

// IsHighOp reports whether op is valid as a scan's high-bound operator.
func (op Op) IsHighOp() bool { return op == LT || op == LTE }

// Satisfies reports whether key satisfies "key `op` bound" — e.g.
// Satisfies(GTE, 5, 5) is true, Satisfies(LT, 5, 5) is false.
func Satisfies(op Op, key, bound int32) bool {
	switch op {
	case GT:
		return key > bound
	case GTE:
		return key >= bound
	case LT:
		return key < bound
	case LTE:
		return key <= bound
	default:
		return false
	}
}

// RecordID locates a tuple in the base heap file: the page it lives on and
// its slot within that page's slot directory. PageNumber == 0 is the
// reserved "empty slot" sentinel used by unused leaf entries.
type RecordID struct {
	PageNumber uint32
	SlotIndex  uint16
}

// IsNull reports whether rid is the empty-slot sentinel.
func (rid RecordID) IsNull() bool { return rid.PageNumber == 0 }

// ErrEndOfFile is the sentinel a RelationScanner returns once it has
// visited every record — the shared vocabulary between the heap file
// scanner and the B+ tree bulk loader that consumes it, so that the
// index core never needs to import the heap package directly.
var ErrEndOfFile = errors.New("types: end of file")

// DecodeInt32 reads a little-endian int32 attribute value out of a raw
// record's attribute slice.
func DecodeInt32(b []byte) (int32, error) {
	if len(b) < 4 {
		return 0, fmt.Errorf("types: need 4 bytes to decode an int32, got %d", len(b))
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// EncodeInt32 writes v as a 4-byte little-endian slice, the inverse of
// DecodeInt32 — used by tests and fixture builders to lay out heap
// records.
func EncodeInt32(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}
