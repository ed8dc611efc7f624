package sim

import "github.com/kamstrup/intmap"

// Commands buffers structural changes requested while a tick is running.
// The world applies them after relocation, so the grid never changes shape
// underneath the update loop.
type Commands struct {
	spawns  []Entity
	removes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity for insertion at the end of the tick.
func (c *Commands) Spawn(entity Entity) {
	c.spawns = append(c.spawns, entity)
}

// Remove queues an entity removal at the end of the tick.
func (c *Commands) Remove(id EntityId) {
	c.removes = append(c.removes, id)
}

// Defer queues a function to run after all spawns and removals. Commands
// queued by the function are applied in the same flush.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.removes) + len(c.defers)
}

// flush applies every queued operation to the world. Operations queued while
// flushing run in a further round until the buffer is empty.
func (c *Commands) flush(w *World) {
	for c.Pending() > 0 {
		spawns, removes, defers := c.spawns, c.removes, c.defers
		c.spawns, c.removes, c.defers = nil, nil, nil

		removed := intmap.NewSet[EntityId](len(removes))
		for _, id := range removes {
			if removed.Has(id) {
				continue
			}
			removed.Add(id)
			if err := w.Remove(id); err != nil {
				w.logger.WithField("entity", id).WithError(err).Warn("deferred remove skipped")
			}
		}

		for _, entity := range spawns {
			if err := w.Spawn(entity); err != nil {
				w.logger.WithField("entity", entity.id).WithError(err).Warn("deferred spawn skipped")
			}
		}

		for _, fn := range defers {
			fn()
		}
	}
}
