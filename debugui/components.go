package debugui

import "github.com/plus3/ledge/sim"

type EntityBrowser struct {
	cache              *EntityBrowserCache
	selectedEntityId   sim.EntityId
	hasSelection       bool
	filterText         string
	filterCell         *[2]int
	maxEntitiesPerPage int
	currentPage        int
}

type CellViewer struct {
	cache        *CellViewerCache
	selectedCell *[2]int
}

type WorldStatsWindow struct {
	historyFrames int
	frameHistory  []float32
	tickHistory   []float32
	frameIndex    int
}
