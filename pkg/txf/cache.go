package txf

import (
	"container/list"
	"fmt"
	"sync"
)

// DocumentCache keeps parsed documents in memory with LRU eviction.
//
// Memory use is estimated from object, coordinate and attribute counts. When
// the limit would be exceeded, least recently used documents are evicted.
//
// Example:
//
//	cache := txf.NewDocumentCache(256 * 1024 * 1024) // 256MB limit
//
//	doc, err := cache.Get("/data/M-37-001.txf", func() (*txf.Document, error) {
//	    return parser.Parse("/data/M-37-001.txf")
//	})
type DocumentCache struct {
	maxMemory  int64
	usedMemory int64
	docs       map[string]*cacheEntry
	lru        *list.List // most recent at front
	mu         sync.Mutex

	hits   int
	misses int
}

// cacheEntry tracks a cached document and its metadata
type cacheEntry struct {
	name       string
	doc        *Document
	memorySize int64
	element    *list.Element
}

// NewDocumentCache creates a cache with the given memory limit in bytes.
// A limit of 0 means unlimited.
func NewDocumentCache(maxMemoryBytes int64) *DocumentCache {
	return &DocumentCache{
		maxMemory: maxMemoryBytes,
		docs:      make(map[string]*cacheEntry),
		lru:       list.New(),
	}
}

// Get returns the cached document for name or loads it with loader.
//
// The loader is only called on a miss. A loaded document that does not fit
// the cache is still returned, just not cached.
func (c *DocumentCache) Get(name string, loader func() (*Document, error)) (*Document, error) {
	c.mu.Lock()
	if entry, ok := c.docs[name]; ok {
		c.lru.MoveToFront(entry.element)
		c.hits++
		c.mu.Unlock()
		return entry.doc, nil
	}
	c.misses++
	c.mu.Unlock()

	doc, err := loader()
	if err != nil {
		return nil, err
	}

	// Too large to cache is not an error for the caller
	_ = c.Add(name, doc)
	return doc, nil
}

// Add stores a document under name, evicting older entries as needed.
// Returns an error if the document alone exceeds the memory limit.
func (c *DocumentCache) Add(name string, doc *Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	memSize := estimateDocumentMemory(doc)
	tooLarge := c.maxMemory > 0 && memSize > c.maxMemory

	if entry, ok := c.docs[name]; ok {
		if tooLarge {
			// the stale document must not outlive its replacement
			c.lru.Remove(entry.element)
			delete(c.docs, name)
			c.usedMemory -= entry.memorySize
		} else {
			c.usedMemory += memSize - entry.memorySize
			entry.doc = doc
			entry.memorySize = memSize
			c.lru.MoveToFront(entry.element)
			c.evictOver(entry)
			return nil
		}
	}

	if tooLarge {
		return fmt.Errorf("document too large for cache (%d bytes > %d bytes max)",
			memSize, c.maxMemory)
	}

	if c.maxMemory > 0 {
		for c.usedMemory+memSize > c.maxMemory && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &cacheEntry{
		name:       name,
		doc:        doc,
		memorySize: memSize,
	}
	entry.element = c.lru.PushFront(entry)
	c.docs[name] = entry
	c.usedMemory += memSize

	return nil
}

// evictOver evicts from the back until the limit holds, never evicting keep.
// Must be called with c.mu locked.
func (c *DocumentCache) evictOver(keep *cacheEntry) {
	if c.maxMemory <= 0 {
		return
	}
	for c.usedMemory > c.maxMemory {
		elem := c.lru.Back()
		if elem == nil || elem.Value.(*cacheEntry) == keep {
			return
		}
		c.evictLRU()
	}
}

// evictLRU removes the least recently used document.
// Must be called with c.mu locked.
func (c *DocumentCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}

	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.docs, entry.name)
	c.usedMemory -= entry.memorySize
}

// Remove explicitly removes a document from the cache.
func (c *DocumentCache) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.docs[name]; ok {
		c.lru.Remove(entry.element)
		delete(c.docs, name)
		c.usedMemory -= entry.memorySize
	}
}

// Clear removes all documents from the cache.
func (c *DocumentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.docs = make(map[string]*cacheEntry)
	c.lru.Init()
	c.usedMemory = 0
}

// Stats returns cache statistics.
func (c *DocumentCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		DocumentCount: len(c.docs),
		UsedMemory:    c.usedMemory,
		MaxMemory:     c.maxMemory,
		Hits:          c.hits,
		Misses:        c.misses,
	}
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	DocumentCount int   // Number of documents currently cached
	UsedMemory    int64 // Estimated memory usage in bytes
	MaxMemory     int64 // Maximum memory limit in bytes
	Hits          int
	Misses        int
}

// estimateDocumentMemory estimates memory usage for a document.
//
// Rough model: 1KB per document, 256 bytes per object, 32 bytes per
// coordinate and 48 bytes plus the text length per map entry.
func estimateDocumentMemory(doc *Document) int64 {
	if doc == nil {
		return 0
	}

	size := int64(1024) + mapSize(doc.passport)
	for _, obj := range doc.objects {
		size += 256
		size += int64(len(obj.coordinates)) * 32
		size += mapSize(obj.fields) + mapSize(obj.semantics)
		size += int64(len(obj.title))
	}
	return size
}

func mapSize(m map[string]string) int64 {
	var n int64
	for k, v := range m {
		n += 48 + int64(len(k)+len(v))
	}
	return n
}
