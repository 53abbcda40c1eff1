package codebase

import (
	"bytes"
	"crypto/sha256"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dhamidi/modinfo/java/module"
	"github.com/dhamidi/modinfo/java/parser"
)

const DefaultCacheSize = 256

// parsed is the result of parsing one module-info source. It does not
// depend on the file path, so identical sources share an entry.
type parsed struct {
	root     *parser.Node
	model    *module.Model
	problems []Problem

	resolveOnce sync.Once
	resolved    *module.Model
}

func (p *parsed) Resolved() *module.Model {
	p.resolveOnce.Do(func() {
		if p.model != nil {
			p.resolved = p.model.Resolved()
		}
	})
	return p.resolved
}

// Cache memoizes parse results by content hash.
type Cache struct {
	entries *lru.Cache[[sha256.Size]byte, *parsed]

	mu           sync.Mutex
	hits, misses int
}

// NewCache returns a cache holding up to size entries; sizes below one
// use DefaultCacheSize.
func NewCache(size int) *Cache {
	if size < 1 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[[sha256.Size]byte, *parsed](size)
	if err != nil {
		panic(err)
	}
	return &Cache{entries: entries}
}

func (c *Cache) parse(content []byte) *parsed {
	key := sha256.Sum256(content)
	if p, ok := c.entries.Get(key); ok {
		c.count(true)
		return p
	}
	c.count(false)
	p := parseSource(content)
	c.entries.Add(key, p)
	return p
}

func (c *Cache) count(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

// Stats returns the number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

func parseSource(content []byte) *parsed {
	collector := module.Collect()
	root, m, err := module.ParseTree(bytes.NewReader(content), module.WithListener(collector))
	p := &parsed{root: root, model: m}
	for _, e := range collector.Errors {
		p.problems = append(p.problems, problemFromError(e))
	}
	if err != nil && len(collector.Errors) == 0 {
		p.problems = append(p.problems, problemFromError(err))
	}
	if p.root != nil && m != nil {
		p.problems = append(p.problems, lint(p.root, m)...)
	}
	return p
}
