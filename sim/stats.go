package sim

// WorldStats is a point-in-time summary of the world's contents.
type WorldStats struct {
	Ticks           uint64
	EntityCount     int
	CollidableCount int
	StandingCount   int
	FallingCount    int

	GridWidth        int
	GridHeight       int
	OccupiedCells    int
	MaxCellOccupancy int
	// Cells lists occupied cells only, in cell-major order.
	Cells []CellStats
}

// CellStats describes one occupied cell.
type CellStats struct {
	X, Y       int
	Count      int
	Collidable int
	Ids        []EntityId
}

// CollectStats walks the grid and summarizes it.
func (w *World) CollectStats() WorldStats {
	g := w.grid
	stats := WorldStats{
		Ticks:       w.ticks,
		EntityCount: g.Len(),
		GridWidth:   g.width,
		GridHeight:  g.height,
	}

	for cell, ids := range g.cells {
		if len(ids) == 0 {
			continue
		}

		cs := CellStats{
			X:     cell % g.width,
			Y:     cell / g.width,
			Count: len(ids),
			Ids:   append([]EntityId(nil), ids...),
		}
		for _, id := range ids {
			entity := g.entity(id)
			if entity.Collidable {
				cs.Collidable++
			}
			switch entity.State {
			case StateStanding:
				stats.StandingCount++
			case StateFalling:
				stats.FallingCount++
			}
		}

		stats.CollidableCount += cs.Collidable
		stats.OccupiedCells++
		stats.MaxCellOccupancy = max(stats.MaxCellOccupancy, cs.Count)
		stats.Cells = append(stats.Cells, cs)
	}

	return stats
}
