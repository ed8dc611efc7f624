package sim

import (
	"fmt"
	"math"
	"slices"

	"github.com/kamstrup/intmap"
)

// gridEntry locates an entity inside the grid.
type gridEntry struct {
	slot int // arena slot
	cell int // flat cell index
}

// Grid is a uniform spatial partition of the world. Each cell holds the
// identities of the entities whose centers fall inside it, in insertion
// order. The grid also owns the entities themselves.
type Grid struct {
	width      int
	height     int
	cellWidth  float32
	cellHeight float32

	cells [][]EntityId // index = y*width + x
	arena entityArena
	index *intmap.Map[EntityId, gridEntry]
}

// NewGrid creates a grid covering worldWidth x worldHeight with cells of the
// given size. Partial cells at the far edges are not part of the grid.
func NewGrid(worldWidth, worldHeight, cellWidth, cellHeight float32) (*Grid, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("%w: cell size %vx%v", ErrInvalidSettings, cellWidth, cellHeight)
	}

	width := int(math.Floor(float64(worldWidth / cellWidth)))
	height := int(math.Floor(float64(worldHeight / cellHeight)))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: world %vx%v smaller than one cell", ErrInvalidSettings, worldWidth, worldHeight)
	}

	return &Grid{
		width:      width,
		height:     height,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		cells:      make([][]EntityId, width*height),
		index:      intmap.New[EntityId, gridEntry](256),
	}, nil
}

// Width returns the number of cell columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of cell rows.
func (g *Grid) Height() int { return g.height }

// CellSize returns the world-space size of one cell.
func (g *Grid) CellSize() (float32, float32) {
	return g.cellWidth, g.cellHeight
}

// Len returns the number of entities in the grid.
func (g *Grid) Len() int {
	return g.arena.Len()
}

// CellOf maps a world position to cell coordinates. Positions outside the
// grid yield a *CellOutOfBoundsError.
func (g *Grid) CellOf(pos Vec2) (int, int, error) {
	x, y := g.rawCell(pos)
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return x, y, &CellOutOfBoundsError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	return x, y, nil
}

func (g *Grid) rawCell(pos Vec2) (int, int) {
	x := int(math.Floor(float64(pos.X / g.cellWidth)))
	y := int(math.Floor(float64(pos.Y / g.cellHeight)))
	return x, y
}

// Insert places the entity in the cell containing its center.
func (g *Grid) Insert(entity Entity) error {
	if _, ok := g.index.Get(entity.id); ok {
		return fmt.Errorf("%w: %d", ErrDuplicateEntity, entity.id)
	}

	x, y, err := g.CellOf(entity.Position)
	if err != nil {
		return fmt.Errorf("insert entity %d: %w", entity.id, err)
	}

	cell := y*g.width + x
	slot := g.arena.Append(entity)
	g.cells[cell] = append(g.cells[cell], entity.id)
	g.index.Put(entity.id, gridEntry{slot: slot, cell: cell})
	return nil
}

// Get returns the live entity with the given identity.
func (g *Grid) Get(id EntityId) (*Entity, bool) {
	entry, ok := g.index.Get(id)
	if !ok {
		return nil, false
	}
	return g.arena.Get(entry.slot), true
}

// Locate returns the cell an identity is currently recorded in.
func (g *Grid) Locate(id EntityId) (int, int, bool) {
	entry, ok := g.index.Get(id)
	if !ok {
		return 0, 0, false
	}
	return entry.cell % g.width, entry.cell / g.width, true
}

// Remove takes the entity out of the grid and returns it.
func (g *Grid) Remove(id EntityId) (Entity, error) {
	entry, ok := g.index.Get(id)
	if !ok {
		return Entity{}, fmt.Errorf("%w: %d", ErrEntityNotFound, id)
	}

	entity := *g.arena.Get(entry.slot)
	g.removeFromCell(entry.cell, id)
	g.arena.Delete(entry.slot)
	g.index.Del(id)
	return entity, nil
}

// Relocate moves an identity between cells when the move from oldPos to
// newPos crosses a cell boundary. It must run after integration and before
// the next query. If newPos lies outside the grid the entity stays in its
// old cell and an error is returned.
func (g *Grid) Relocate(id EntityId, oldPos, newPos Vec2) error {
	newX, newY, err := g.CellOf(newPos)
	if err != nil {
		return fmt.Errorf("relocate entity %d: %w", id, err)
	}

	oldX, oldY := g.rawCell(oldPos)
	if oldX == newX && oldY == newY {
		return nil
	}

	entry, ok := g.index.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrEntityNotFound, id)
	}

	newCell := newY*g.width + newX
	if entry.cell == newCell {
		return nil
	}

	g.removeFromCell(entry.cell, id)
	g.cells[newCell] = append(g.cells[newCell], id)
	entry.cell = newCell
	g.index.Put(id, entry)
	return nil
}

func (g *Grid) removeFromCell(cell int, id EntityId) {
	ids := g.cells[cell]
	if i := slices.Index(ids, id); i >= 0 {
		g.cells[cell] = slices.Delete(ids, i, i+1)
	}
}

// Cell returns a copy of the identities resident in cell (x, y).
func (g *Grid) Cell(x, y int) ([]EntityId, error) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil, &CellOutOfBoundsError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	return slices.Clone(g.cells[y*g.width+x]), nil
}

// Query returns the live entities resident in every cell overlapping r, in
// cell-major then insertion order. Only those cells are visited. A rectangle
// that overhangs the grid is clipped to it; one entirely outside the grid
// yields a *CellOutOfBoundsError.
func (g *Grid) Query(r Rect) ([]*Entity, error) {
	minX, minY := g.rawCell(Vec2{X: r.X, Y: r.Y})
	maxX, maxY := g.rawCell(Vec2{X: r.Right(), Y: r.Bottom()})

	if maxX < 0 || maxY < 0 || minX >= g.width || minY >= g.height || maxX < minX || maxY < minY {
		return nil, &CellOutOfBoundsError{X: minX, Y: minY, Width: g.width, Height: g.height}
	}

	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, g.width-1), min(maxY, g.height-1)

	var result []*Entity
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for _, id := range g.cells[y*g.width+x] {
				result = append(result, g.entity(id))
			}
		}
	}
	return result, nil
}

// All returns every live entity in cell-major then insertion order. It is
// meant for the tick driver; rendering should use Query.
func (g *Grid) All() []*Entity {
	result := make([]*Entity, 0, g.arena.Len())
	for _, ids := range g.cells {
		for _, id := range ids {
			result = append(result, g.entity(id))
		}
	}
	return result
}

// Snapshot returns value copies of every entity, without behaviors, in the
// same order as All.
func (g *Grid) Snapshot() []Snapshot {
	result := make([]Snapshot, 0, g.arena.Len())
	for _, ids := range g.cells {
		for _, id := range ids {
			result = append(result, g.entity(id).Snapshot())
		}
	}
	return result
}

func (g *Grid) entity(id EntityId) *Entity {
	entry, _ := g.index.Get(id)
	return g.arena.Get(entry.slot)
}
