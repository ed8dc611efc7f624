package sim

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/sirupsen/logrus"
)

// Settings configures a World.
type Settings struct {
	// Gravity is the downward force applied each tick to bodies that are
	// affected by gravity and not standing.
	Gravity    float32
	Width      float32
	Height     float32
	CellWidth  float32
	CellHeight float32
}

// DefaultSettings returns the settings of the stock platformer world.
func DefaultSettings() Settings {
	return Settings{
		Gravity:    0.01,
		Width:      5000,
		Height:     5000,
		CellWidth:  50,
		CellHeight: 50,
	}
}

var platformOutline = color.RGBA{R: 255, G: 255, B: 255, A: 255}

type move struct {
	id       EntityId
	from, to Vec2
}

// World owns the grid and drives the fixed-timestep update and the
// render-time visibility query. It is not safe for concurrent use.
type World struct {
	settings Settings
	gravity  Vec2
	grid     *Grid
	builder  *EntityBuilder
	commands *Commands
	logger   logrus.FieldLogger

	levels  []Level
	current int
	ticks   uint64

	candidates []Snapshot
	moves      []move
}

// NewWorld creates an empty world. Entities and levels built for it should
// come from builder.
func NewWorld(settings Settings, builder *EntityBuilder) (*World, error) {
	grid, err := NewGrid(settings.Width, settings.Height, settings.CellWidth, settings.CellHeight)
	if err != nil {
		return nil, err
	}
	if builder == nil {
		builder = NewEntityBuilder()
	}

	return &World{
		settings: settings,
		gravity:  Vec2{Y: settings.Gravity},
		grid:     grid,
		builder:  builder,
		commands: newCommands(),
		logger:   logrus.StandardLogger().WithField("component", "world"),
	}, nil
}

// SetLogger replaces the logger used for per-entity warnings.
func (w *World) SetLogger(logger logrus.FieldLogger) {
	w.logger = logger.WithField("component", "world")
}

// SetGravity changes the downward gravity force.
func (w *World) SetGravity(gravity float32) {
	w.settings.Gravity = gravity
	w.gravity = Vec2{Y: gravity}
}

// Gravity returns the gravity force applied per tick.
func (w *World) Gravity() Vec2 { return w.gravity }

func (w *World) Settings() Settings { return w.settings }

// Grid returns the current level's grid. LoadLevel replaces it.
func (w *World) Grid() *Grid { return w.grid }

func (w *World) Builder() *EntityBuilder { return w.builder }

// Commands returns the buffer for structural changes made during a tick.
func (w *World) Commands() *Commands { return w.commands }

// Ticks returns the number of completed ticks.
func (w *World) Ticks() uint64 { return w.ticks }

func (w *World) Levels() []Level { return w.levels }

func (w *World) CurrentLevel() int { return w.current }

// Get returns the live entity with the given identity.
func (w *World) Get(id EntityId) (*Entity, bool) { return w.grid.Get(id) }

// AddLevel appends a level definition. It does not load it.
func (w *World) AddLevel(level Level) {
	w.levels = append(w.levels, level)
}

// LoadLevel resets the grid to the level's dimensions and populates it with
// the level's platforms. Every entity previously in the world is dropped.
func (w *World) LoadLevel(index int) error {
	if len(w.levels) == 0 {
		return ErrNoLevel
	}
	if index < 0 || index >= len(w.levels) {
		return fmt.Errorf("%w: %d of %d", ErrLevelIndex, index, len(w.levels))
	}

	level := w.levels[index]
	width, height := level.Width, level.Height
	if width <= 0 || height <= 0 {
		width, height = w.settings.Width, w.settings.Height
	}

	grid, err := NewGrid(width, height, w.settings.CellWidth, w.settings.CellHeight)
	if err != nil {
		return fmt.Errorf("load level %d: %w", index, err)
	}
	w.grid = grid
	w.current = index

	loaded := 0
	for _, data := range level.Platforms {
		if err := w.grid.Insert(w.buildPlatform(data)); err != nil {
			w.logger.WithFields(logrus.Fields{
				"level_index": index,
				"x":           data.X,
				"y":           data.Y,
			}).WithError(err).Warn("platform skipped")
			continue
		}
		loaded++
	}

	w.logger.WithFields(logrus.Fields{
		"level_index": index,
		"platforms":   loaded,
		"cells":       fmt.Sprintf("%dx%d", grid.Width(), grid.Height()),
	}).Info("level loaded")
	return nil
}

// NextLevel loads the level after the current one.
func (w *World) NextLevel() error {
	return w.LoadLevel(w.current + 1)
}

func (w *World) buildPlatform(data PlatformData) Entity {
	b := w.builder.Create().
		Location(data.X, data.Y).
		Size(data.Width, data.Height)

	switch data.Kind {
	case KindPlatform:
		b.Collidable(true).
			PhysicsBehavior(StaticBody{}).
			RenderBehavior(RectRender{Color: data.Color, Outline: platformOutline})
	default:
		b.RenderBehavior(RectRender{Color: data.Color})
	}

	return b.Build()
}

// Spawn inserts an entity into the grid.
func (w *World) Spawn(entity Entity) error {
	return w.grid.Insert(entity)
}

// Remove deletes an entity from the world.
func (w *World) Remove(id EntityId) error {
	_, err := w.grid.Remove(id)
	return err
}

// Move teleports an entity and keeps its cell membership in step.
func (w *World) Move(id EntityId, pos Vec2) error {
	entity, ok := w.grid.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrEntityNotFound, id)
	}
	if _, _, err := w.grid.CellOf(pos); err != nil {
		return fmt.Errorf("move entity %d: %w", id, err)
	}

	from := entity.Position
	entity.Position = pos
	return w.grid.Relocate(id, from, pos)
}

// Tick advances the simulation by one fixed step.
//
// Every body resolves collisions against the same pre-tick snapshot, cell
// membership is reconciled once all bodies have moved, and commands queued
// during the tick are applied last.
func (w *World) Tick() {
	view := w.grid.collidableView()

	w.moves = w.moves[:0]
	for _, entity := range w.grid.All() {
		before := entity.Position

		w.candidates = view.near(entity, w.gravity, w.candidates[:0])
		entity.step(w.gravity, w.candidates)

		if entity.Position != before {
			w.moves = append(w.moves, move{id: entity.id, from: before, to: entity.Position})
		}
	}

	for _, m := range w.moves {
		if err := w.grid.Relocate(m.id, m.from, m.to); err != nil {
			w.evict(m, err)
		}
	}

	w.commands.flush(w)
	w.ticks++
}

// evict drops a body that could not be placed back into the grid.
func (w *World) evict(m move, err error) {
	w.logger.WithFields(logrus.Fields{
		"entity": m.id,
		"x":      m.to.X,
		"y":      m.to.Y,
	}).WithError(err).Warn("entity left the grid, evicting")

	if _, rmErr := w.grid.Remove(m.id); rmErr != nil {
		w.logger.WithField("entity", m.id).WithError(rmErr).Error("evict failed")
	}
}

// Draw renders every entity in the cells overlapping viewport. Positions are
// extrapolated by velocity*lag, where lag is the fraction of a tick elapsed
// since the last update. Simulation state is not modified. It returns the
// number of entities handed to their render behavior.
func (w *World) Draw(canvas Canvas, viewport Rect, lag float32) int {
	entities, err := w.grid.Query(viewport)
	if err != nil {
		if !errors.Is(err, ErrCellOutOfBounds) {
			w.logger.WithError(err).Warn("draw query failed")
		}
		return 0
	}

	drawn := 0
	for _, entity := range entities {
		if entity.Render == nil {
			continue
		}
		dest := entity.Position.Add(entity.Velocity().Scale(lag))
		entity.Render.Draw(canvas, dest, entity.Width, entity.Height)
		drawn++
	}
	return drawn
}

// NewPlayer builds the standard player body: a gravity-affected free body that
// is not itself collidable.
func NewPlayer(builder *EntityBuilder, x, y, width, height float32, render RenderBehavior) Entity {
	return builder.Create().
		Location(x, y).
		Size(width, height).
		AffectedByGravity().
		State(StateFalling).
		PhysicsBehavior(&FreeBody{}).
		RenderBehavior(render).
		Build()
}
