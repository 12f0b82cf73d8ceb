package tracelogging

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

// Cache memoizes events of a provider by the static shape of their
// description, so that callers building descriptions at runtime only compile
// each shape once.
type Cache struct {
	provider *Provider

	mu     sync.RWMutex
	events map[string]*Event
}

// NewCache returns an empty cache for p.
func NewCache(p *Provider) *Cache {
	return &Cache{provider: p, events: make(map[string]*Event)}
}

// Event returns the event cached under key, compiling the description
// returned by build on a miss. build must return the same description for the
// same key. Failed compilations are not cached.
func (c *Cache) Event(key string, build func() *syntax.Event) (*Event, error) {
	c.mu.RLock()
	e, ok := c.events[key]
	c.mu.RUnlock()
	if ok {
		return e, nil
	}

	c.mu.Lock()
	if e, ok := c.events[key]; ok {
		c.mu.Unlock()
		return e, nil
	}
	e, err := c.provider.Compile(build())
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.events[key] = e
	c.mu.Unlock()

	// Logged after unlocking: the logger may write events through this cache.
	c.provider.log.WithFields(logrus.Fields{
		"key":   key,
		"event": e.Name(),
	}).Debug("compiled event shape")
	return e, nil
}

// Len returns the number of cached events.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}
