package sim

// EntityId is the stable identity of a simulated body. Identities are handed
// out by an EntityBuilder and never reused while the entity is alive.
type EntityId uint32

// State is the last-computed contact state of a body.
type State uint8

const (
	StateNone State = iota
	StateFalling
	StateStanding
)

func (s State) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateStanding:
		return "standing"
	default:
		return "none"
	}
}

// Entity is a simulated body. Position is the center of its bounding box.
//
// Once inserted into a Grid the entity is owned by the grid's arena; callers
// only see it through pointers returned by grid queries.
type Entity struct {
	id EntityId

	Position          Vec2
	Width             float32
	Height            float32
	Collidable        bool
	AffectedByGravity bool
	State             State

	// Physics may be nil, which makes the entity inert decoration.
	Physics PhysicsBehavior
	// Render may be nil, in which case the entity is never drawn.
	Render RenderBehavior
}

// Id returns the identity assigned at construction.
func (e Entity) Id() EntityId {
	return e.id
}

// Bounds returns the axis-aligned bounding box of the entity.
func (e *Entity) Bounds() Rect {
	return CenteredRect(e.Position, e.Width, e.Height)
}

// Velocity reports the velocity of the attached physics behavior, or zero
// for entities without one.
func (e *Entity) Velocity() Vec2 {
	if e.Physics == nil {
		return Vec2{}
	}
	return e.Physics.Velocity()
}

// pendingForce reports the force queued on the physics behavior for the
// next tick.
func (e *Entity) pendingForce() Vec2 {
	if e.Physics == nil {
		return Vec2{}
	}
	return e.Physics.PendingForce()
}

// Snapshot copies the entity's data. Behaviors are not part of a snapshot.
func (e *Entity) Snapshot() Snapshot {
	return Snapshot{
		Id:         e.id,
		Position:   e.Position,
		Width:      e.Width,
		Height:     e.Height,
		Collidable: e.Collidable,
		State:      e.State,
	}
}

// step advances the entity by one tick against the given collision candidates.
func (e *Entity) step(gravity Vec2, candidates []Snapshot) {
	if e.Physics == nil {
		return
	}
	if e.AffectedByGravity && e.State != StateStanding {
		e.Physics.ApplyForce(gravity)
	}
	e.Physics.Update(&e.Position, e.Width, e.Height, candidates, &e.State)
}

// Snapshot is a value-only copy of an entity taken before a tick mutates
// anything, so every body resolves collisions against the same world view.
type Snapshot struct {
	Id         EntityId
	Position   Vec2
	Width      float32
	Height     float32
	Collidable bool
	State      State
}

// Bounds returns the axis-aligned bounding box of the snapshot.
func (s Snapshot) Bounds() Rect {
	return CenteredRect(s.Position, s.Width, s.Height)
}
