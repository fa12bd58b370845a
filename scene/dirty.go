package scene

import "github.com/kamstrup/intmap"

// DirtySet tracks entities whose component data changed since the last
// drain, so a redraw can touch only what moved. Membership is kept in an
// integer-keyed map; a parallel slice preserves first-marked order for
// deterministic drains.
type DirtySet struct {
	marks *intmap.Map[Entity, struct{}]
	order []Entity
}

// NewDirtySet creates an empty dirty set.
func NewDirtySet() *DirtySet {
	return &DirtySet{
		marks: intmap.New[Entity, struct{}](256),
	}
}

// Mark records the entity as dirty. Marking twice is a no-op.
func (d *DirtySet) Mark(e Entity) {
	if _, ok := d.marks.Get(e); ok {
		return
	}
	d.marks.Put(e, struct{}{})
	d.order = append(d.order, e)
}

// MarkSubtree marks the entity and every descendant below it in the tree.
func (d *DirtySet) MarkSubtree(t *Tree, e Entity) {
	d.Mark(e)
	for desc := range t.Descendants(e) {
		d.Mark(desc)
	}
}

// Has reports whether the entity is currently marked.
func (d *DirtySet) Has(e Entity) bool {
	_, ok := d.marks.Get(e)
	return ok
}

// Len returns the number of marked entities.
func (d *DirtySet) Len() int {
	return len(d.order)
}

// Drain returns the marked entities in first-marked order and clears the
// set. The returned slice is owned by the caller.
func (d *DirtySet) Drain() []Entity {
	if len(d.order) == 0 {
		return nil
	}
	drained := d.order
	d.order = nil
	d.marks.Clear()
	return drained
}

// Clear discards all marks without returning them.
func (d *DirtySet) Clear() {
	d.order = d.order[:0]
	d.marks.Clear()
}
