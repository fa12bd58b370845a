package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/retained/scene"
)

// NodeInfo is one cached row of the browser table.
type NodeInfo struct {
	Entity scene.Entity
	Kinds  []string
	Flags  scene.NodeFlags
	Depth  int
}

// NodeBrowser lists every live node with its payload kinds, flags and tree
// depth. Rows are cached per frame count change, filterable by substring,
// sortable by column, and selectable; the selection feeds the inspector.
type NodeBrowser struct {
	cache          []NodeInfo
	lastEntityLen  int
	selected       scene.Entity
	hasSelection   bool
	filterText     string
	maxRowsPerPage int
	currentPage    int
	sortColumn     int
	sortAscending  bool
}

// NewNodeBrowser creates a browser paginating at maxRowsPerPage rows.
func NewNodeBrowser(maxRowsPerPage int) *NodeBrowser {
	return &NodeBrowser{
		maxRowsPerPage: maxRowsPerPage,
		sortAscending:  true,
	}
}

// Selected returns the currently selected node, if any.
func (nb *NodeBrowser) Selected() (scene.Entity, bool) {
	return nb.selected, nb.hasSelection
}

func (nb *NodeBrowser) Render(frame *scene.Frame) {
	if !imgui.BeginV("Node Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	nb.rebuildCacheIfNeeded(frame.Graph)

	imgui.InputTextWithHint("##search", "Search...", &nb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		nb.filterText = ""
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("NodeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Kinds")
		imgui.TableSetupColumn("Flags")
		imgui.TableSetupColumn("Depth")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			nb.sortColumn = int(spec.ColumnIndex())
			nb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			nb.sortCache()
			sortSpecs.SetSpecsDirty(false)
		}

		filtered := nb.filteredRows()

		startIdx := nb.currentPage * nb.maxRowsPerPage
		endIdx := startIdx + nb.maxRowsPerPage
		if startIdx > len(filtered) {
			startIdx = 0
			nb.currentPage = 0
		}
		if endIdx > len(filtered) {
			endIdx = len(filtered)
		}

		for i := startIdx; i < endIdx; i++ {
			row := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := nb.hasSelection && nb.selected == row.Entity
			if imgui.SelectableBoolV(row.Entity.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				nb.selected = row.Entity
				nb.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Kinds, ", "))

			imgui.TableNextColumn()
			imgui.Text(flagString(row.Flags))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Depth))
		}

		imgui.EndTable()
	}

	filtered := nb.filteredRows()
	if len(filtered) > nb.maxRowsPerPage {
		totalPages := (len(filtered) + nb.maxRowsPerPage - 1) / nb.maxRowsPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d nodes)", nb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && nb.currentPage > 0 {
			nb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && nb.currentPage < totalPages-1 {
			nb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d nodes", len(filtered)))
	}

	imgui.End()
}

func (nb *NodeBrowser) rebuildCacheIfNeeded(g *scene.Graph) {
	if nb.cache != nil && nb.lastEntityLen == g.Len() {
		return
	}
	nb.lastEntityLen = g.Len()

	nb.cache = make([]NodeInfo, 0, g.Len())
	tree := g.Tree()

	for e := range g.Allocator().Live() {
		var kinds []string
		if c, err := g.Visuals().Lookup(e); err == nil {
			kinds = append(kinds, scene.KindOf(c).String())
		}
		if c, err := g.Transforms().Lookup(e); err == nil {
			kinds = append(kinds, scene.KindOf(c).String())
		}

		nb.cache = append(nb.cache, NodeInfo{
			Entity: e,
			Kinds:  kinds,
			Flags:  g.FlagsOf(e),
			Depth:  tree.Depth(e),
		})
	}

	if nb.hasSelection && !g.IsValid(nb.selected) {
		nb.hasSelection = false
	}

	nb.sortCache()
}

func (nb *NodeBrowser) sortCache() {
	sort.Slice(nb.cache, func(i, j int) bool {
		a, b := nb.cache[i], nb.cache[j]
		var less bool

		switch nb.sortColumn {
		case 1:
			less = strings.Join(a.Kinds, ",") < strings.Join(b.Kinds, ",")
		case 2:
			less = a.Flags < b.Flags
		case 3:
			less = a.Depth < b.Depth
		default:
			less = a.Entity < b.Entity
		}

		if !nb.sortAscending {
			return !less
		}
		return less
	})
}

func (nb *NodeBrowser) filteredRows() []NodeInfo {
	if nb.filterText == "" {
		return nb.cache
	}

	filterLower := strings.ToLower(nb.filterText)
	filtered := make([]NodeInfo, 0, len(nb.cache))

	for _, row := range nb.cache {
		idStr := strings.ToLower(row.Entity.String())
		kindStr := strings.ToLower(strings.Join(row.Kinds, " "))
		flagStr := strings.ToLower(flagString(row.Flags))

		if !strings.Contains(idStr, filterLower) &&
			!strings.Contains(kindStr, filterLower) &&
			!strings.Contains(flagStr, filterLower) {
			continue
		}
		filtered = append(filtered, row)
	}

	return filtered
}

func flagString(f scene.NodeFlags) string {
	if f == 0 {
		return "-"
	}

	var parts []string
	if f.Has(scene.FlagHidden) {
		parts = append(parts, "hidden")
	}
	if f.Has(scene.FlagDisabled) {
		parts = append(parts, "disabled")
	}
	if f.Has(scene.FlagHoverable) {
		parts = append(parts, "hoverable")
	}
	if f.Has(scene.FlagFocusable) {
		parts = append(parts, "focusable")
	}
	return strings.Join(parts, "|")
}
