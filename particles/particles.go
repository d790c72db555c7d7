// Package particles advects a swarm of short-lived tracer particles through a
// vector field. Particles are entities in an ark ECS world.
package particles

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/currents/field"
	"github.com/pthm-cable/currents/olic"
)

// ErrInvalidConfig is returned for unusable swarm settings.
var ErrInvalidConfig = errors.New("invalid particle config")

// Config holds swarm settings.
type Config struct {
	Count         int     `yaml:"count"`          // Live particles (0 = disabled)
	MaxAge        int     `yaml:"max_age"`        // Steps before a particle respawns
	VelocityScale float64 `yaml:"velocity_scale"` // Integration step per evolve, in field units
	Seed          int64   `yaml:"seed"`
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidConfig, c.Count)
	}
	if c.Count > 0 && c.MaxAge < 1 {
		return fmt.Errorf("%w: max_age must be positive, got %d", ErrInvalidConfig, c.MaxAge)
	}
	if c.Count > 0 && !(c.VelocityScale > 0) {
		return fmt.Errorf("%w: velocity_scale must be positive, got %v", ErrInvalidConfig, c.VelocityScale)
	}
	return nil
}

// Position is the particle location in canvas coordinates.
type Position struct {
	X, Y float64
}

// Motion holds per-particle advection state.
type Motion struct {
	PrevX, PrevY float64
	Speed        float64 // Field magnitude at the previous position
	Age          int
	Moved        bool // Whether the last evolve produced a segment
}

// Segment is one step of a particle's path.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Speed          float64
}

// Swarm owns the particle world.
type Swarm struct {
	world  *ecs.World
	mapper *ecs.Map2[Position, Motion]
	filter *ecs.Filter2[Position, Motion]

	field  field.Sampler
	canvas olic.Canvas
	cfg    Config
	rng    *rand.Rand

	count int
}

// New creates a swarm of cfg.Count particles at random ages and positions.
func New(cfg Config, f field.Sampler, canvas olic.Canvas) (*Swarm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, olic.ErrNilField
	}

	world := ecs.NewWorld()
	s := &Swarm{
		world:  world,
		mapper: ecs.NewMap2[Position, Motion](world),
		filter: ecs.NewFilter2[Position, Motion](world),
		field:  f,
		canvas: canvas,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
	s.SetCount(cfg.Count)
	return s, nil
}

// Len returns the number of live particles.
func (s *Swarm) Len() int { return s.count }

// SetCount spawns or removes particles until n are alive.
func (s *Swarm) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	for s.count < n {
		pos := s.randomPosition()
		mot := Motion{PrevX: pos.X, PrevY: pos.Y, Age: s.rng.Intn(s.cfg.MaxAge + 1)}
		s.mapper.NewEntity(&pos, &mot)
		s.count++
	}
	if s.count == n {
		return
	}

	// Collect first, the world is locked while a query runs
	excess := s.count - n
	toRemove := make([]ecs.Entity, 0, excess)
	query := s.filter.Query()
	for query.Next() {
		if len(toRemove) < excess {
			toRemove = append(toRemove, query.Entity())
		}
	}
	for _, e := range toRemove {
		s.mapper.Remove(e)
		s.count--
	}
}

// Evolve advances every particle one step. Particles that exceed their age,
// leave the canvas, or stall in a zero field respawn at a random position.
func (s *Swarm) Evolve() {
	maxAge := s.cfg.MaxAge
	query := s.filter.Query()
	for query.Next() {
		pos, mot := query.Get()

		if mot.Age > maxAge {
			*pos = s.randomPosition()
			mot.Age = 0
		}

		p := r2.Vec{X: pos.X, Y: pos.Y}
		v := s.field.Velocity(p)
		speed := r2.Norm(v)
		if speed == 0 {
			mot.Moved = false
			mot.Age = maxAge + 1
			continue
		}

		next := olic.Integrate(s.field, p, s.cfg.VelocityScale)
		mot.PrevX, mot.PrevY = pos.X, pos.Y
		mot.Speed = speed
		mot.Moved = true
		mot.Age++
		pos.X, pos.Y = next.X, next.Y

		if _, ok := s.canvas.PixelAt(next); !ok {
			mot.Age = maxAge + 1
		}
	}
}

// Segments appends the path step of every particle that moved on the last
// evolve to dst and returns it.
func (s *Swarm) Segments(dst []Segment) []Segment {
	query := s.filter.Query()
	for query.Next() {
		pos, mot := query.Get()
		if !mot.Moved {
			continue
		}
		dst = append(dst, Segment{
			X0: mot.PrevX, Y0: mot.PrevY,
			X1: pos.X, Y1: pos.Y,
			Speed: mot.Speed,
		})
	}
	return dst
}

func (s *Swarm) randomPosition() Position {
	return Position{
		X: s.rng.Float64() * float64(s.canvas.Width-1),
		Y: s.rng.Float64() * float64(s.canvas.Height-1),
	}
}
