package simulator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/maverickhq/maverick/internal/deck"
)

// Cache memoizes simulation results by scenario for the lifetime of the
// process. It is an explicit object owned by its simulator rather than an
// ambient singleton, so tests can isolate it. Reads happen before writes
// and writes are idempotent: concurrent identical requests may duplicate
// work but never corrupt state. The cache grows unbounded for the session.
type Cache struct {
	mu      sync.RWMutex
	results map[string]Result
}

// NewCache creates an empty simulation result cache.
func NewCache() *Cache {
	return &Cache{results: make(map[string]Result)}
}

// Get returns a previously stored result for the key.
func (c *Cache) Get(key string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.results[key]
	return result, ok
}

// Put stores a result for the key.
func (c *Cache) Put(key string, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = result
}

// Len returns the number of cached scenarios.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// cacheKey builds the scenario key: the sorted hole and board notations
// plus the opponent count. Card order within hole or board never changes
// the scenario.
func cacheKey(hole, board []deck.Card, opponents int) string {
	return fmt.Sprintf("%s|%s|%d", sortedNotation(hole), sortedNotation(board), opponents)
}

func sortedNotation(cards []deck.Card) string {
	notations := make([]string, len(cards))
	for i, c := range cards {
		notations[i] = c.Notation()
	}
	sort.Strings(notations)
	return strings.Join(notations, "")
}
