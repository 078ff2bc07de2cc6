package html

import "sync"

// CopyState records which code blocks of one view were recently copied.
// Each view owns its own CopyState; the zero value is ready to use.
type CopyState struct {
	mu     sync.Mutex
	copied map[string]bool
}

// MarkCopied flags the block with the given id as copied.
func (c *CopyState) MarkCopied(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.copied == nil {
		c.copied = make(map[string]bool)
	}
	c.copied[id] = true
}

// Clear removes the copied flag from the block with the given id.
func (c *CopyState) Clear(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.copied, id)
}

// Copied reports whether the block with the given id is flagged. It is safe
// to call on a nil CopyState.
func (c *CopyState) Copied(id string) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied[id]
}
