package sim

// EntityBuilder is the only supported way to construct entities. It owns the
// identity counter, so independent builders hand out independent identity
// spaces.
//
//	player := builder.Create().
//		Location(50, 50).
//		Size(50, 100).
//		AffectedByGravity().
//		PhysicsBehavior(&FreeBody{}).
//		Build()
type EntityBuilder struct {
	nextId    EntityId
	exhausted bool
	pending   Entity
}

// NewEntityBuilder creates a builder whose first entity receives identity 0.
func NewEntityBuilder() *EntityBuilder {
	return &EntityBuilder{}
}

// NextId returns the identity the next Build call will assign.
func (b *EntityBuilder) NextId() EntityId {
	return b.nextId
}

// Create begins a new entity description, discarding anything set since the
// last Build.
func (b *EntityBuilder) Create() *EntityBuilder {
	b.pending = Entity{}
	return b
}

func (b *EntityBuilder) Location(x, y float32) *EntityBuilder {
	b.pending.Position = Vec2{X: x, Y: y}
	return b
}

func (b *EntityBuilder) Size(width, height float32) *EntityBuilder {
	b.pending.Width = width
	b.pending.Height = height
	return b
}

func (b *EntityBuilder) Collidable(collidable bool) *EntityBuilder {
	b.pending.Collidable = collidable
	return b
}

func (b *EntityBuilder) PhysicsBehavior(physics PhysicsBehavior) *EntityBuilder {
	b.pending.Physics = physics
	return b
}

func (b *EntityBuilder) RenderBehavior(render RenderBehavior) *EntityBuilder {
	b.pending.Render = render
	return b
}

func (b *EntityBuilder) AffectedByGravity() *EntityBuilder {
	b.pending.AffectedByGravity = true
	return b
}

func (b *EntityBuilder) State(state State) *EntityBuilder {
	b.pending.State = state
	return b
}

// Build materializes the described entity with the next identity and resets
// the builder to defaults so it can be reused immediately.
func (b *EntityBuilder) Build() Entity {
	if b.exhausted {
		panic("entity builder identity space exhausted")
	}

	entity := b.pending
	entity.id = b.nextId

	b.nextId++
	b.exhausted = b.nextId == 0
	b.pending = Entity{}

	return entity
}
