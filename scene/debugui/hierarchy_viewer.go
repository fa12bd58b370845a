package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/retained/scene"
)

// HierarchyViewer renders the scene tree as collapsible nodes, roots first,
// children in insertion order. Clicking a node forwards the selection to the
// attached browser so the inspector follows along.
type HierarchyViewer struct {
	browser *NodeBrowser
}

// NewHierarchyViewer creates a viewer. The browser may be nil, in which case
// nodes are not selectable.
func NewHierarchyViewer(browser *NodeBrowser) *HierarchyViewer {
	return &HierarchyViewer{browser: browser}
}

func (hv *HierarchyViewer) Render(frame *scene.Frame) {
	if !imgui.BeginV("Hierarchy", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	g := frame.Graph
	for root := range g.Tree().Roots() {
		hv.renderNode(g, root)
	}

	imgui.End()
}

func (hv *HierarchyViewer) renderNode(g *scene.Graph, e scene.Entity) {
	label := nodeLabel(g, e)

	hasChildren := false
	if _, ok := g.Tree().FirstChild(e); ok {
		hasChildren = true
	}

	flags := imgui.TreeNodeFlagsOpenOnArrow
	if !hasChildren {
		flags |= imgui.TreeNodeFlagsLeaf
	}
	if hv.browser != nil {
		if selected, ok := hv.browser.Selected(); ok && selected == e {
			flags |= imgui.TreeNodeFlagsSelected
		}
	}

	open := imgui.TreeNodeExStrV(label, flags)
	if imgui.IsItemClicked() && hv.browser != nil {
		hv.browser.selected = e
		hv.browser.hasSelection = true
	}

	if open {
		for child := range g.Tree().Children(e) {
			hv.renderNode(g, child)
		}
		imgui.TreePop()
	}
}

func nodeLabel(g *scene.Graph, e scene.Entity) string {
	if txt, err := scene.Get[scene.Text](g.Visuals(), e); err == nil && txt.Content != "" {
		return fmt.Sprintf("%v %q", e, txt.Content)
	}
	if c, err := g.Visuals().Lookup(e); err == nil {
		return fmt.Sprintf("%v [%s]", e, scene.KindOf(c))
	}
	return e.String()
}
