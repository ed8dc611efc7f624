package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ledge/sim"
)

type CellViewerCache struct {
	cells         []sim.CellStats
	lastTick      uint64
	lastGrid      *sim.Grid
	valid         bool
	sortColumn    int
	sortAscending bool
}

func NewCellViewer() *CellViewer {
	return &CellViewer{
		cache: &CellViewerCache{
			sortColumn:    2,
			sortAscending: false,
		},
	}
}

// Render draws the occupied cells of the world. It returns the cell clicked
// this frame, if any.
func (cv *CellViewer) Render(world *sim.World) *[2]int {
	if !imgui.BeginV("Cell Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	cv.Refresh(world)

	maxCount := 0
	for _, cell := range cv.cache.cells {
		maxCount = max(maxCount, cell.Count)
	}

	imgui.Text(fmt.Sprintf("Occupied cells: %d", len(cv.cache.cells)))

	var clickedCell *[2]int

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("CellTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Cell")
		imgui.TableSetupColumn("Collidable")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Ids")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			cv.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, cell := range cv.cache.cells {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := cv.selectedCell != nil && cv.selectedCell[0] == cell.X && cv.selectedCell[1] == cell.Y
			if imgui.SelectableBoolV(fmt.Sprintf("(%d, %d)", cell.X, cell.Y), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				selected := [2]int{cell.X, cell.Y}
				clickedCell = &selected
				cv.selectedCell = &selected
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", cell.Collidable))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", cell.Count))

			if maxCount > 0 {
				barWidth := float32(cell.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprint(cell.Ids))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clickedCell
}

// Refresh rebuilds the cached cell list when the world has ticked or loaded a
// level.
func (cv *CellViewer) Refresh(world *sim.World) {
	if cv.cache.valid && cv.cache.lastTick == world.Ticks() && cv.cache.lastGrid == world.Grid() {
		return
	}

	cv.cache.cells = world.CollectStats().Cells
	cv.cache.lastTick = world.Ticks()
	cv.cache.lastGrid = world.Grid()
	cv.cache.valid = true
	cv.sortCells()
}

func (cv *CellViewer) Invalidate() {
	cv.cache.valid = false
}

func (cv *CellViewer) Cells() []sim.CellStats {
	return cv.cache.cells
}

func (cv *CellViewer) SortBy(column int, ascending bool) {
	cv.cache.sortColumn = column
	cv.cache.sortAscending = ascending
	cv.sortCells()
}

func (cv *CellViewer) sortCells() {
	sort.SliceStable(cv.cache.cells, func(i, j int) bool {
		a, b := cv.cache.cells[i], cv.cache.cells[j]
		var less bool

		switch cv.cache.sortColumn {
		case 0:
			less = a.Y < b.Y || (a.Y == b.Y && a.X < b.X)
		case 1:
			less = a.Collidable < b.Collidable
		case 2:
			less = a.Count < b.Count
		default:
			less = a.Count < b.Count
		}

		if !cv.cache.sortAscending {
			return !less
		}
		return less
	})
}
