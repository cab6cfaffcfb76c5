package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dino/components"
	"github.com/pthm-cable/dino/config"
)

// DecorationKind identifies a scenery entity for drawing.
type DecorationKind uint8

const (
	DecorTerrain DecorationKind = iota
	DecorCloud
	DecorStar
	DecorMoon
)

// Decoration is a read-only view of one scenery entity.
type Decoration struct {
	Kind    DecorationKind
	Variant int // star sprite or moon phase
	Box     components.Box
}

// Scenery owns the cosmetic background: two terrain strips, clouds, stars
// and the moon. It lives in its own ECS world and never takes part in
// collision or fitness.
type Scenery struct {
	cfg    config.SceneryConfig
	spawnX float64
	rng    *rand.Rand

	world      *ecs.World
	terrainMap *ecs.Map4[components.Position, components.Velocity, components.Size, components.Terrain]
	cloudMap   *ecs.Map4[components.Position, components.Velocity, components.Size, components.Cloud]
	starMap    *ecs.Map4[components.Position, components.Velocity, components.Size, components.Star]
	moonMap    *ecs.Map4[components.Position, components.Velocity, components.Size, components.Moon]

	terrainFilter *ecs.Filter4[components.Position, components.Velocity, components.Size, components.Terrain]
	cloudFilter   *ecs.Filter4[components.Position, components.Velocity, components.Size, components.Cloud]
	starFilter    *ecs.Filter4[components.Position, components.Velocity, components.Size, components.Star]

	moon ecs.Entity

	cloudCountdown float64
	starCountdown  float64
	starOpacity    float64

	toRemove []ecs.Entity
}

// NewScenery creates the background with terrain scrolling at terrainVelX.
func NewScenery(cfg config.SceneryConfig, spawnX, terrainVelX float64, rng *rand.Rand) *Scenery {
	world := ecs.NewWorld()
	s := &Scenery{
		cfg:    cfg,
		spawnX: spawnX,
		rng:    rng,
		world:  world,

		terrainMap: ecs.NewMap4[components.Position, components.Velocity, components.Size, components.Terrain](world),
		cloudMap:   ecs.NewMap4[components.Position, components.Velocity, components.Size, components.Cloud](world),
		starMap:    ecs.NewMap4[components.Position, components.Velocity, components.Size, components.Star](world),
		moonMap:    ecs.NewMap4[components.Position, components.Velocity, components.Size, components.Moon](world),

		terrainFilter: ecs.NewFilter4[components.Position, components.Velocity, components.Size, components.Terrain](world),
		cloudFilter:   ecs.NewFilter4[components.Position, components.Velocity, components.Size, components.Cloud](world),
		starFilter:    ecs.NewFilter4[components.Position, components.Velocity, components.Size, components.Star](world),
	}

	size := components.Size{W: cfg.TerrainSize.W, H: cfg.TerrainSize.H}
	for _, x := range [...]float64{0, cfg.TerrainSpacing} {
		pos := components.Position{X: x, Y: cfg.TerrainY}
		vel := components.Velocity{X: terrainVelX}
		s.terrainMap.NewEntity(&pos, &vel, &size, &components.Terrain{})
	}

	phase := cfg.MoonPhases[0]
	moonPos := components.Position{X: cfg.MoonX, Y: cfg.MoonY}
	moonVel := components.Velocity{X: cfg.MoonVelocity}
	moonSize := components.Size{W: phase.W, H: phase.H}
	s.moon = s.moonMap.NewEntity(&moonPos, &moonVel, &moonSize, &components.Moon{})

	s.cloudCountdown = uniform(rng, cfg.CloudFirstMin, cfg.CloudFirstMax)
	s.starCountdown = 0 // first star appears immediately

	return s
}

// Update moves every decoration, wraps the terrain and moon, fades the stars
// and spawns new clouds and stars.
func (s *Scenery) Update(dt float64) {
	s.updateTerrain(dt)
	s.updateClouds(dt)
	s.updateMoon(dt)
	s.updateOpacity(dt)
	s.updateStars(dt)
	s.spawnCloud(dt)
	s.spawnStar(dt)
}

func (s *Scenery) updateTerrain(dt float64) {
	query := s.terrainFilter.Query()
	for query.Next() {
		pos, vel, size, _ := query.Get()
		if pos.X+size.W < 0 {
			pos.X += 2 * size.W
		}
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}
}

func (s *Scenery) updateClouds(dt float64) {
	s.toRemove = s.toRemove[:0]
	query := s.cloudFilter.Query()
	for query.Next() {
		pos, vel, size, _ := query.Get()
		if pos.X+size.W < 0 {
			s.toRemove = append(s.toRemove, query.Entity())
			continue
		}
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}
	s.flushRemovals()
}

func (s *Scenery) updateMoon(dt float64) {
	pos, vel, size, moon := s.moonMap.Get(s.moon)
	if pos.X+s.cfg.MoonWrapWidth < 0 {
		pos.X += s.cfg.MoonWrapDistance
		moon.Phase = (moon.Phase + 1) % len(s.cfg.MoonPhases)
		phase := s.cfg.MoonPhases[moon.Phase]
		size.W, size.H = phase.W, phase.H
	}
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt
}

func (s *Scenery) updateOpacity(dt float64) {
	pos, _, _, _ := s.moonMap.Get(s.moon)
	if pos.X < s.cfg.MoonVisibleX {
		s.starOpacity = math.Round(math.Min(s.starOpacity+s.cfg.StarFadeRate*dt, 255))
	} else {
		s.starOpacity = math.Round(math.Max(s.starOpacity-s.cfg.StarFadeRate*dt, 0))
	}
}

func (s *Scenery) updateStars(dt float64) {
	s.toRemove = s.toRemove[:0]
	query := s.starFilter.Query()
	for query.Next() {
		pos, vel, size, _ := query.Get()
		if pos.X+size.W < 0 {
			s.toRemove = append(s.toRemove, query.Entity())
			continue
		}
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}
	s.flushRemovals()
}

func (s *Scenery) spawnCloud(dt float64) {
	s.cloudCountdown -= dt
	if s.cloudCountdown > 0 {
		return
	}
	pos := components.Position{X: s.spawnX, Y: float64(randRange(s.rng, s.cfg.CloudMinY, s.cfg.CloudMaxY))}
	vel := components.Velocity{X: s.cfg.CloudVelocity}
	size := components.Size{W: s.cfg.CloudSize.W, H: s.cfg.CloudSize.H}
	s.cloudMap.NewEntity(&pos, &vel, &size, &components.Cloud{})
	s.cloudCountdown += uniform(s.rng, s.cfg.CloudDelayMin, s.cfg.CloudDelayMax)
}

func (s *Scenery) spawnStar(dt float64) {
	s.starCountdown -= dt
	if s.starCountdown > 0 {
		return
	}
	pos := components.Position{X: s.spawnX, Y: float64(randRange(s.rng, s.cfg.StarMinY, s.cfg.StarMaxY))}
	vel := components.Velocity{X: s.cfg.StarVelocity}
	size := components.Size{W: s.cfg.StarSize.W, H: s.cfg.StarSize.H}
	star := components.Star{Variant: s.rng.Intn(max(1, s.cfg.StarVariants))}
	s.starMap.NewEntity(&pos, &vel, &size, &star)
	s.starCountdown += uniform(s.rng, s.cfg.StarDelayMin, s.cfg.StarDelayMax)
}

// flushRemovals deletes entities collected during a query.
func (s *Scenery) flushRemovals() {
	for _, e := range s.toRemove {
		s.world.RemoveEntity(e)
	}
	s.toRemove = s.toRemove[:0]
}

// Accelerate adds delta to the horizontal velocity of both terrain strips.
func (s *Scenery) Accelerate(delta float64) {
	query := s.terrainFilter.Query()
	for query.Next() {
		_, vel, _, _ := query.Get()
		vel.X += delta
	}
}

// SetTerrainVelocity overrides the terrain scroll speed.
func (s *Scenery) SetTerrainVelocity(velX float64) {
	query := s.terrainFilter.Query()
	for query.Next() {
		_, vel, _, _ := query.Get()
		vel.X = velX
	}
}

// TerrainVelocity returns the scroll speed of the terrain.
func (s *Scenery) TerrainVelocity() float64 {
	v := 0.0
	query := s.terrainFilter.Query()
	for query.Next() {
		_, vel, _, _ := query.Get()
		v = vel.X
	}
	return v
}

// StarOpacity returns the current star opacity in [0, 255].
func (s *Scenery) StarOpacity() uint8 {
	return uint8(s.starOpacity)
}

// MoonPhase returns the index of the current moon phase.
func (s *Scenery) MoonPhase() int {
	_, _, _, moon := s.moonMap.Get(s.moon)
	return moon.Phase
}

// Counts returns the number of live clouds and stars.
func (s *Scenery) Counts() (clouds, stars int) {
	cq := s.cloudFilter.Query()
	clouds = cq.Count()
	cq.Close()
	sq := s.starFilter.Query()
	stars = sq.Count()
	sq.Close()
	return clouds, stars
}

// Visit calls fn for every decoration, back to front.
func (s *Scenery) Visit(fn func(Decoration)) {
	mp, _, ms, moon := s.moonMap.Get(s.moon)
	fn(Decoration{Kind: DecorMoon, Variant: moon.Phase, Box: boxOf(mp, ms)})

	sq := s.starFilter.Query()
	for sq.Next() {
		pos, _, size, star := sq.Get()
		fn(Decoration{Kind: DecorStar, Variant: star.Variant, Box: boxOf(pos, size)})
	}
	cq := s.cloudFilter.Query()
	for cq.Next() {
		pos, _, size, _ := cq.Get()
		fn(Decoration{Kind: DecorCloud, Box: boxOf(pos, size)})
	}
	tq := s.terrainFilter.Query()
	for tq.Next() {
		pos, _, size, _ := tq.Get()
		fn(Decoration{Kind: DecorTerrain, Box: boxOf(pos, size)})
	}
}

func boxOf(pos *components.Position, size *components.Size) components.Box {
	return components.Box{X: pos.X, Y: pos.Y, W: size.W, H: size.H}
}

// randRange returns an integer in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
