package words

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type spelled struct {
	words string
	err   error
}

// Cache memoises another Speller in a bounded LRU. It is safe for concurrent
// use.
type Cache struct {
	next    Speller
	entries *lru.Cache[string, spelled]
}

// NewCache wraps next with an LRU holding up to size renderings.
func NewCache(size int, next Speller) (*Cache, error) {
	entries, err := lru.New[string, spelled](size)
	if err != nil {
		return nil, fmt.Errorf("creating words cache: %w", err)
	}
	return &Cache{next: next, entries: entries}, nil
}

// Spell implements Speller.
func (c *Cache) Spell(number string) (string, error) {
	if hit, ok := c.entries.Get(number); ok {
		return hit.words, hit.err
	}

	w, err := c.next.Spell(number)
	c.entries.Add(number, spelled{words: w, err: err})
	return w, err
}

// Len reports the number of cached renderings.
func (c *Cache) Len() int {
	return c.entries.Len()
}
