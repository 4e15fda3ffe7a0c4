package ids

// Captured owns a snapshot of an identity. Its zero value is unset, which
// matches no identity, so a freshly declared Captured always reports a
// change on the first comparison.
type Captured struct {
	id ID
}

// Capture stores an owned clone of id. Capturing nil clears the snapshot.
func (c *Captured) Capture(id ID) {
	if id == nil {
		c.id = nil
		return
	}
	c.id = id.Clone()
}

// IsSet reports whether a snapshot has been captured.
func (c *Captured) IsSet() bool { return c.id != nil }

// Get returns the captured identity, or nil if unset.
func (c *Captured) Get() ID { return c.id }

// Matches reports whether the snapshot is set and equals id.
func (c *Captured) Matches(id ID) bool {
	return c.id != nil && Equal(c.id, id)
}

// Clear discards the snapshot.
func (c *Captured) Clear() { c.id = nil }
