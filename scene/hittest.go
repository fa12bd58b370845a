package scene

// HitTest resolves the topmost entity under the given point. Roots and
// sibling chains are walked in reverse insertion order, so the last-inserted
// (topmost-drawn) node wins; within a branch, descendants are preferred over
// their ancestors because children draw on top of their parent. Bounds come
// from the Transform arena; nodes without a transform, and entire subtrees
// flagged hidden, are skipped.
func HitTest(g *Graph, x, y float32) (Entity, bool) {
	var roots []Entity
	for r := range g.tree.Roots() {
		roots = append(roots, r)
	}

	for i := len(roots) - 1; i >= 0; i-- {
		if hit, ok := hitNode(g, roots[i], x, y); ok {
			return hit, true
		}
	}
	return 0, false
}

func hitNode(g *Graph, e Entity, x, y float32) (Entity, bool) {
	if g.FlagsOf(e).Has(FlagHidden) {
		return 0, false
	}

	for child := range g.tree.ChildrenReversed(e) {
		if hit, ok := hitNode(g, child, x, y); ok {
			return hit, true
		}
	}

	t, err := Get[Transform](g.transforms, e)
	if err != nil || !t.Contains(x, y) {
		return 0, false
	}
	if g.FlagsOf(e).Has(FlagDisabled) {
		return 0, false
	}
	return e, true
}
