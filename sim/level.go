package sim

import "image/color"

// PlatformKind selects how level geometry takes part in the simulation.
type PlatformKind int

const (
	// KindPlatform is solid: collidable, static, drawn as a rectangle.
	KindPlatform PlatformKind = iota
	// KindDecoration is drawn but never collides.
	KindDecoration
)

func (k PlatformKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindDecoration:
		return "decoration"
	default:
		return "unknown"
	}
}

// PlatformData describes one piece of level geometry, centered on (X, Y).
type PlatformData struct {
	X, Y          float32
	Width, Height float32
	Kind          PlatformKind
	Color         color.RGBA
}

// Level is immutable input consumed once when it is loaded into a world.
// A zero Width or Height falls back to the world's size.
type Level struct {
	Width     float32
	Height    float32
	Platforms []PlatformData
}
