package sim

// TerminalVelocity bounds the vertical speed of a free body, in world units
// per tick. It keeps fast falls from tunnelling through thin platforms.
const TerminalVelocity float32 = 10.0

// contactEpsilon is how far apart two edges may be and still count as touching.
const contactEpsilon float32 = 1e-3

// PhysicsBehavior is the per-entity motion strategy invoked once per tick.
type PhysicsBehavior interface {
	// ApplyForce accumulates a force for the current tick only.
	ApplyForce(force Vec2)
	// Update integrates motion and resolves collisions against candidates,
	// writing the resulting position and contact state.
	Update(position *Vec2, width, height float32, candidates []Snapshot, state *State)
	// Velocity returns the velocity after the most recent Update.
	Velocity() Vec2
	// PendingForce returns the force accumulated for the next Update.
	PendingForce() Vec2
}

// FreeBody is a dynamic body integrated with explicit Euler steps.
//
// Collisions only resolve landings: any overlap stops the body, but it is
// pushed out only when it comes from above. Side and bottom overlaps are
// left in place.
type FreeBody struct {
	acceleration Vec2
	velocity     Vec2
}

func (b *FreeBody) ApplyForce(force Vec2) {
	b.acceleration = b.acceleration.Add(force)
}

func (b *FreeBody) Velocity() Vec2 {
	return b.velocity
}

func (b *FreeBody) PendingForce() Vec2 {
	return b.acceleration
}

func (b *FreeBody) Update(position *Vec2, width, height float32, candidates []Snapshot, state *State) {
	b.velocity = b.velocity.Add(b.acceleration)
	b.velocity.Y = min(max(b.velocity.Y, -TerminalVelocity), TerminalVelocity)
	*position = position.Add(b.velocity)
	b.acceleration = Vec2{}

	landed := false
	supported := false
	for _, other := range candidates {
		if !other.Collidable {
			continue
		}

		bounds := CenteredRect(*position, width, height)
		otherBounds := other.Bounds()

		if bounds.Overlaps(otherBounds) {
			b.velocity = Vec2{}
			if position.Y < other.Position.Y {
				position.Y = other.Position.Y - other.Height/2 - height/2
				landed = true
			}
			continue
		}

		if restsOn(bounds, otherBounds) {
			supported = true
		}
	}

	if landed || supported {
		*state = StateStanding
	} else {
		*state = StateFalling
	}
}

// restsOn reports whether body touches the top edge of support while
// overlapping it horizontally.
func restsOn(body, support Rect) bool {
	gap := support.Y - body.Bottom()
	if gap < -contactEpsilon || gap > contactEpsilon {
		return false
	}
	return body.X < support.Right() && support.X < body.Right()
}

// StaticBody never moves. Platforms use it so they take part in collision
// resolution and rendering without being integrated.
type StaticBody struct{}

func (StaticBody) ApplyForce(Vec2) {}

func (StaticBody) Update(*Vec2, float32, float32, []Snapshot, *State) {}

func (StaticBody) Velocity() Vec2 {
	return Vec2{}
}

func (StaticBody) PendingForce() Vec2 {
	return Vec2{}
}
