package debugui

import "github.com/plus3/retained/scene"

// AttachStandardWindows wires the full overlay set into an ImguiPass: the
// node browser, the inspector and hierarchy viewer following its selection,
// and the performance window. Returns the browser so callers can read the
// selection themselves.
func AttachStandardWindows(pass *ImguiPass, pipeline *scene.Pipeline) *NodeBrowser {
	browser := NewNodeBrowser(100)
	pass.Attach(browser)
	pass.Attach(NewComponentInspector(browser))
	pass.Attach(NewHierarchyViewer(browser))
	pass.Attach(NewPerformanceStats(pipeline, 120))
	return browser
}
