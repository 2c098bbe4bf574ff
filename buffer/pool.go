// Package buffer implements the pin-counted buffer pool the B+ tree core
// consumes as an out-of-scope collaborator (spec.md §6.2). It is an LRU
// page cache over a diskfile.File, grounded on DaemonDB's
// storage_engine/bufferpool, renamed to the exact contract spec.md §6.2
// specifies (AllocPage/ReadPage/UnpinPage/FlushFile/GetFirstPageNo).
//
// A ristretto instance sits behind the LRU frame table as a victim cache:
// when a clean frame is evicted its bytes are admitted to ristretto keyed
// by page id, so a fetch that misses the frame table but was evicted only
// recently — common while walking back up the parent chain during a
// split — can still avoid a disk read.
package buffer

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/Sripradha-karkala/BtreeIndex/btlog"
	"github.com/Sripradha-karkala/BtreeIndex/diskfile"
)

// frame is one cached page plus its pool bookkeeping.
type frame struct {
	data     []byte
	pinCount int
	dirty    bool
}

// Pool is a pin-counted LRU buffer pool over a single diskfile.File.
type Pool struct {
	mu       sync.Mutex
	file     *diskfile.File
	capacity int
	frames   map[diskfile.PageID]*frame
	// order holds page ids from least- to most-recently used.
	order  []diskfile.PageID
	victim *ristretto.Cache[diskfile.PageID, []byte]
	log    btlog.Logger
}

// Config holds Pool construction parameters.
type Config struct {
	Capacity int         // max resident frames; 0 uses DefaultCapacity
	Logger   btlog.Logger // nil uses btlog.Discard
}

// DefaultCapacity is used when Config.Capacity is zero.
const DefaultCapacity = 64

// New creates a buffer pool over file.
func New(file *diskfile.File, cfg Config) (*Pool, error) {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	log := cfg.Logger
	if log == nil {
		log = btlog.Discard{}
	}

	victim, err := ristretto.NewCache(&ristretto.Config[diskfile.PageID, []byte]{
		NumCounters: int64(capacity) * 20,
		MaxCost:     int64(capacity) * int64(diskfile.PageSize) * 4,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("buffer: create victim cache: %w", err)
	}

	return &Pool{
		file:     file,
		capacity: capacity,
		frames:   make(map[diskfile.PageID]*frame, capacity),
		victim:   victim,
		log:      log,
	}, nil
}

// AllocPage allocates a fresh page, pins it, and returns a zero-filled
// buffer the caller may mutate in place.
func (p *Pool) AllocPage() (diskfile.PageID, []byte, error) {
	id := p.file.AllocPage()

	p.mu.Lock()
	defer p.mu.Unlock()

	fr := &frame{data: make([]byte, diskfile.PageSize), pinCount: 1, dirty: true}
	if err := p.admit(id, fr); err != nil {
		return 0, nil, err
	}
	p.log.Info("buffer: alloc", "page", id)
	return id, fr.data, nil
}

// ReadPage pins and returns the bytes of page id, loading it from the
// victim cache or disk if it is not already resident.
func (p *Pool) ReadPage(id diskfile.PageID) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fr, ok := p.frames[id]; ok {
		fr.pinCount++
		p.touch(id)
		p.log.Info("buffer: hit", "page", id)
		return fr.data, nil
	}

	var data []byte
	if cached, ok := p.victim.Get(id); ok {
		p.log.Info("buffer: victim hit", "page", id)
		data = append([]byte(nil), cached...)
	} else {
		raw, err := p.file.ReadPage(id)
		if err != nil {
			return nil, fmt.Errorf("buffer: read page %d: %w", id, err)
		}
		p.log.Info("buffer: miss", "page", id)
		data = raw
	}

	fr := &frame{data: data, pinCount: 1}
	if err := p.admit(id, fr); err != nil {
		return nil, err
	}
	return fr.data, nil
}

// UnpinPage releases one pin on page id. dirty, if true, marks the frame
// as needing a flush; it never clears a dirty flag set by an earlier
// unpin (a page stays dirty until it is actually flushed).
func (p *Pool) UnpinPage(id diskfile.PageID, dirty bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	fr, ok := p.frames[id]
	if !ok {
		return fmt.Errorf("buffer: unpin page %d: not resident", id)
	}
	if fr.pinCount <= 0 {
		return fmt.Errorf("buffer: unpin page %d: pin count already zero", id)
	}
	fr.pinCount--
	if dirty {
		fr.dirty = true
	}
	return nil
}

// FlushFile writes every dirty resident frame to disk and fsyncs the
// underlying file.
func (p *Pool) FlushFile() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, fr := range p.frames {
		if !fr.dirty {
			continue
		}
		if err := p.file.WritePage(id, fr.data); err != nil {
			return fmt.Errorf("buffer: flush page %d: %w", id, err)
		}
		fr.dirty = false
	}
	return p.file.Sync()
}

// GetFirstPageNo returns the file's first page number (the meta page).
func (p *Pool) GetFirstPageNo() diskfile.PageID {
	return p.file.GetFirstPageNo()
}

// admit inserts fr into the frame table, evicting an unpinned LRU victim
// first if the pool is at capacity. Caller holds p.mu.
func (p *Pool) admit(id diskfile.PageID, fr *frame) error {
	if len(p.frames) >= p.capacity {
		if err := p.evictOne(); err != nil {
			return err
		}
	}
	p.frames[id] = fr
	p.touch(id)
	return nil
}

// evictOne evicts the least-recently-used unpinned frame. Caller holds p.mu.
func (p *Pool) evictOne() error {
	for i, id := range p.order {
		fr, ok := p.frames[id]
		if !ok {
			p.order = append(p.order[:i:i], p.order[i+1:]...)
			return p.evictOne()
		}
		if fr.pinCount > 0 {
			continue
		}
		if fr.dirty {
			if err := p.file.WritePage(id, fr.data); err != nil {
				return fmt.Errorf("buffer: evict page %d: %w", id, err)
			}
			// Drop any older victim copy so ReadPage cannot return
			// bytes that predate this write.
			p.victim.Del(id)
		} else {
			// Best-effort: a clean frame's bytes already match what's on
			// disk, so a dropped Set just costs a future ReadPage a disk
			// round trip instead of a victim-cache hit, never data loss.
			p.victim.Set(id, fr.data, int64(len(fr.data)))
		}
		delete(p.frames, id)
		p.order = append(p.order[:i:i], p.order[i+1:]...)
		p.log.Info("buffer: evict", "page", id, "dirty", fr.dirty)
		return nil
	}
	return fmt.Errorf("buffer: all %d frames pinned, cannot evict", len(p.frames))
}

// touch moves id to the most-recently-used end of p.order. Caller holds p.mu.
func (p *Pool) touch(id diskfile.PageID) {
	for i, existing := range p.order {
		if existing == id {
			p.order = append(p.order[:i:i], p.order[i+1:]...)
			break
		}
	}
	p.order = append(p.order, id)
}

// Close flushes the pool and releases the victim cache.
func (p *Pool) Close() error {
	if err := p.FlushFile(); err != nil {
		return err
	}
	p.victim.Close()
	return nil
}
