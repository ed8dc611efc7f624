package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ledge/sim"
)

type EntityInfo struct {
	ID         sim.EntityId
	Position   sim.Vec2
	CellX      int
	CellY      int
	State      sim.State
	Collidable bool
	Physics    string
	Render     string
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastTick      uint64
	lastGrid      *sim.Grid
	valid         bool
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render(world *sim.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh(world)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterCell = nil
	}
	if eb.filterCell != nil {
		imgui.Text(fmt.Sprintf("Cell filter: (%d, %d)", eb.filterCell[0], eb.filterCell[1]))
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Cell")
		imgui.TableSetupColumn("State")
		imgui.TableSetupColumn("Physics")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		filteredEntities := eb.Filtered()

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f, %.1f", entity.Position.X, entity.Position.Y))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d, %d", entity.CellX, entity.CellY))

			imgui.TableNextColumn()
			imgui.Text(entity.State.String())

			imgui.TableNextColumn()
			imgui.Text(entity.Physics)
		}

		imgui.EndTable()
	}

	filteredEntities := eb.Filtered()

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.Separator()
	eb.renderInspector(world)

	imgui.End()
}

// renderInspector shows the selected entity and lets its position and
// collidable flag be edited in place.
func (eb *EntityBrowser) renderInspector(world *sim.World) {
	if !eb.hasSelection {
		imgui.Text("No entity selected")
		return
	}

	entity, ok := world.Get(eb.selectedEntityId)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d not found", eb.selectedEntityId))
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", entity.Id()))
	imgui.Text(fmt.Sprintf("Size: %.1f x %.1f", entity.Width, entity.Height))
	velocity := entity.Velocity()
	imgui.Text(fmt.Sprintf("Velocity: %.3f, %.3f", velocity.X, velocity.Y))
	imgui.Text(fmt.Sprintf("Render: %s", behaviorName(entity.Render)))

	x, y := entity.Position.X, entity.Position.Y
	changedX := imgui.InputFloat("X", &x)
	changedY := imgui.InputFloat("Y", &y)
	if changedX || changedY {
		if err := world.Move(entity.Id(), sim.Vec2{X: x, Y: y}); err != nil {
			imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), err.Error())
		}
	}

	imgui.Checkbox("Collidable", &entity.Collidable)
	imgui.Checkbox("Affected By Gravity", &entity.AffectedByGravity)

	if imgui.Button("Remove") {
		world.Commands().Remove(entity.Id())
		eb.hasSelection = false
	}
}

// Refresh rebuilds the cached rows when the world has ticked or loaded a level
// since the last refresh.
func (eb *EntityBrowser) Refresh(world *sim.World) {
	if eb.cache.valid && eb.cache.lastTick == world.Ticks() && eb.cache.lastGrid == world.Grid() {
		return
	}

	grid := world.Grid()
	eb.cache.entities = eb.cache.entities[:0]
	for _, entity := range grid.All() {
		cx, cy, _ := grid.Locate(entity.Id())
		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:         entity.Id(),
			Position:   entity.Position,
			CellX:      cx,
			CellY:      cy,
			State:      entity.State,
			Collidable: entity.Collidable,
			Physics:    behaviorName(entity.Physics),
			Render:     behaviorName(entity.Render),
		})
	}
	eb.cache.lastTick = world.Ticks()
	eb.cache.lastGrid = world.Grid()
	eb.cache.valid = true

	eb.sortEntities()
}

// Invalidate forces the next Refresh to rebuild.
func (eb *EntityBrowser) Invalidate() {
	eb.cache.valid = false
}

func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.cache.sortColumn = column
	eb.cache.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 0:
			less = a.ID < b.ID
		case 1:
			less = a.Position.Y < b.Position.Y || (a.Position.Y == b.Position.Y && a.Position.X < b.Position.X)
		case 2:
			less = a.CellY < b.CellY || (a.CellY == b.CellY && a.CellX < b.CellX)
		case 3:
			less = a.State < b.State
		case 4:
			less = a.Physics < b.Physics
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
}

// FilterCell restricts the browser to one cell. Nil clears the restriction.
func (eb *EntityBrowser) FilterCell(cell *[2]int) {
	eb.filterCell = cell
	eb.currentPage = 0
}

// Filtered returns the cached rows matching the text and cell filters.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" && eb.filterCell == nil {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterCell != nil && (entity.CellX != eb.filterCell[0] || entity.CellY != eb.filterCell[1]) {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			stateStr := entity.State.String()
			behaviorStr := strings.ToLower(entity.Physics + " " + entity.Render)

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(stateStr, filterLower) &&
				!strings.Contains(behaviorStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowser) Select(id sim.EntityId) {
	eb.selectedEntityId = id
	eb.hasSelection = true
}

func (eb *EntityBrowser) GetSelectedEntity() (sim.EntityId, bool) {
	return eb.selectedEntityId, eb.hasSelection
}

func behaviorName(behavior any) string {
	if behavior == nil {
		return "none"
	}
	name := fmt.Sprintf("%T", behavior)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
