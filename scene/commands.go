package scene

// Commands buffers structural edits so they can be applied between passes
// instead of while a traversal is in flight. Removals run first; spawns and
// reparents whose target died in the same flush are skipped silently, in
// line with the "entity no longer exists" propagation policy.
type Commands struct {
	spawns    []spawnCommand
	removes   []Entity
	reparents []reparentCommand
	defers    []func()
}

type spawnCommand struct {
	parent     Entity
	hasParent  bool
	components []Component
}

type reparentCommand struct {
	entity    Entity
	newParent Entity
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues creation of a root entity with the given components.
func (c *Commands) Spawn(components ...Component) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// SpawnChild queues creation of an entity under the given parent.
func (c *Commands) SpawnChild(parent Entity, components ...Component) {
	c.spawns = append(c.spawns, spawnCommand{
		parent:     parent,
		hasParent:  true,
		components: components,
	})
}

// RemoveSubtree queues destruction of the entity and its descendants.
func (c *Commands) RemoveSubtree(e Entity) {
	c.removes = append(c.removes, e)
}

// Reparent queues moving the entity under a new parent.
func (c *Commands) Reparent(e, newParent Entity) {
	c.reparents = append(c.reparents, reparentCommand{entity: e, newParent: newParent})
}

// Defer queues an arbitrary function to run after all structural edits.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies the buffered edits to the graph and resets the buffer.
func (c *Commands) Flush(g *Graph) {
	for _, e := range c.removes {
		if g.IsValid(e) {
			_ = g.RemoveSubtree(e)
		}
	}

	for _, cmd := range c.reparents {
		if !g.IsValid(cmd.entity) || !g.IsValid(cmd.newParent) {
			continue
		}
		_ = g.Reparent(cmd.entity, cmd.newParent)
	}

	for _, cmd := range c.spawns {
		if !cmd.hasParent {
			g.Spawn(cmd.components...)
			continue
		}
		if g.IsValid(cmd.parent) {
			_, _ = g.SpawnChild(cmd.parent, cmd.components...)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.removes = c.removes[:0]
	c.reparents = c.reparents[:0]
	c.defers = c.defers[:0]
}
