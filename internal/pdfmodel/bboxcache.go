package pdfmodel

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/mcudoc/refdoc/internal/geom"
	"golang.org/x/crypto/blake2b"
)

// BBoxCache is the document-wide glyph-bbox cache: write-once per key
// (first-writer-wins), so readers observe either an absent or a final
// value. It is a field on Document, never a process global, and is safe for
// a prepass-then-parallel-reads pattern (concurrent Store calls on the same
// key race harmlessly to the same winning value; concurrent Store+Load on
// different keys are always safe).
type BBoxCache struct {
	mu sync.Mutex
	m map[[32]byte]geom.Rectangle
}

// NewBBoxCache returns an empty cache.
func NewBBoxCache() *BBoxCache {
	return &BBoxCache{m: make(map[[32]byte]geom.Rectangle)}
}

func (c *BBoxCache) digest(k bboxCacheKey) [32]byte {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(k.tightW))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(k.tightH))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(k.unicode))

	h, _ := blake2b.New256(nil)
	h.Write(buf[:])
	h.Write([]byte(k.font))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Store records bbox under key if no value has been recorded yet
// (first-writer-wins).
func (c *BBoxCache) Store(key bboxCacheKey, bbox geom.Rectangle) {
	d := c.digest(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[d]; !ok {
		c.m[d] = bbox
	}
}

// Load returns the cached bbox for key, if any.
func (c *BBoxCache) Load(key bboxCacheKey) (geom.Rectangle, bool) {
	d := c.digest(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[d]
	return v, ok
}
