// Package components defines the kinematic state of simulated entities and
// the ECS components of the scenery world.
package components

// ObstacleKind distinguishes ground obstacles from flying ones.
type ObstacleKind uint8

const (
	KindCactus ObstacleKind = iota
	KindBird
)

func (k ObstacleKind) String() string {
	switch k {
	case KindCactus:
		return "cactus"
	case KindBird:
		return "bird"
	}
	return "unknown"
}

// Obstacle is a body the agents must avoid.
// Variant indexes the cactus shape or the bird altitude.
type Obstacle struct {
	Body    Body
	Kind    ObstacleKind
	Variant int
}

// Scenery components. Scenery entities carry Position, Velocity and Size
// plus exactly one of these markers.

// Terrain marks a ground strip.
type Terrain struct{}

// Cloud marks a cloud.
type Cloud struct{}

// Star marks a star. Variant selects its sprite.
type Star struct {
	Variant int
}

// Moon holds the current phase of the moon.
type Moon struct {
	Phase int
}
