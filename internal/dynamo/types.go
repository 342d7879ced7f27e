package dynamo

import (
	"math"
	"sync/atomic"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float64       { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64         { return math.Sqrt(v.LenSq()) }

// Normalize returns the unit vector in the direction of v, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Bounds is the axis-aligned rectangle of the toroidal domain.
type Bounds struct {
	Origin Vec2
	Size   Vec2
}

func NewBounds(width, height float64) Bounds {
	return Bounds{Size: Vec2{width, height}}
}

func (b Bounds) Width() float64  { return b.Size.X }
func (b Bounds) Height() float64 { return b.Size.Y }
func (b Bounds) Max() Vec2       { return b.Origin.Add(b.Size) }

// Contains reports whether p lies in [origin, origin+size) on both axes.
func (b Bounds) Contains(p Vec2) bool {
	m := b.Max()
	return p.X >= b.Origin.X && p.X < m.X && p.Y >= b.Origin.Y && p.Y < m.Y
}

func (b Bounds) Center() Vec2 {
	return b.Origin.Add(b.Size.Scale(0.5))
}

type Star struct {
	Pos Vec2
	Vel Vec2
}

type BlackHole struct {
	Pos    Vec2
	Vel    Vec2
	Acc    Vec2
	Boost  float64
	Mass   float64
	Radius float64
}

// ResetAccumulator clears the acceleration and contact boost before a new
// force accumulation.
func (h *BlackHole) ResetAccumulator() {
	h.Acc = Vec2{}
	h.Boost = 1
}

type BodyUpdate string

const (
	// BodyUpdateSnapshot computes every hole's acceleration from positions
	// frozen at the start of the phase, then integrates all holes.
	BodyUpdateSnapshot BodyUpdate = "snapshot"
	// BodyUpdateSequential accumulates and integrates one hole at a time in
	// index order, so later holes see already-moved earlier holes.
	BodyUpdateSequential BodyUpdate = "sequential"
)

type Schedule string

const (
	SchedulePool  Schedule = "pool"
	ScheduleSpawn Schedule = "spawn"
)

type Params struct {
	g atomic.Uint64

	BodyG           float64
	Dt              float64
	MaxSpeed        float64
	MaxBodySpeed    float64
	ContactRadiusSq float64
	ContactBoost    float64
	StarMass        float64
	Workers         int
	BodyUpdate      BodyUpdate
	Schedule        Schedule
}

func DefaultParams() *Params {
	p := &Params{
		BodyG:           0,
		Dt:              1,
		MaxSpeed:        900,
		MaxBodySpeed:    3,
		ContactRadiusSq: 0,
		ContactBoost:    0.001,
		StarMass:        1,
		Workers:         2,
		BodyUpdate:      BodyUpdateSnapshot,
		Schedule:        SchedulePool,
	}
	p.SetG(10000)
	return p
}

// G returns the gravitational constant. Safe for concurrent use.
func (p *Params) G() float64 {
	return math.Float64frombits(p.g.Load())
}

// SetG stores the gravitational constant as one atomic word so concurrent
// readers never observe a torn value.
func (p *Params) SetG(g float64) {
	p.g.Store(math.Float64bits(g))
}

// HoleG returns the coupling used between black holes.
func (p *Params) HoleG() float64 {
	if p.BodyG == 0 {
		return p.G()
	}
	return p.BodyG
}

// Clone copies p including the current value of G.
func (p *Params) Clone() *Params {
	c := &Params{
		BodyG:           p.BodyG,
		Dt:              p.Dt,
		MaxSpeed:        p.MaxSpeed,
		MaxBodySpeed:    p.MaxBodySpeed,
		ContactRadiusSq: p.ContactRadiusSq,
		ContactBoost:    p.ContactBoost,
		StarMass:        p.StarMass,
		Workers:         p.Workers,
		BodyUpdate:      p.BodyUpdate,
		Schedule:        p.Schedule,
	}
	c.SetG(p.G())
	return c
}

// Validate rejects out-of-range fields. The comparisons are written so that
// NaN fails them.
func (p *Params) Validate() error {
	switch {
	case !finite(p.G()):
		return &ParamError{Field: "g", Value: p.G(), Wrapped: ErrInvalidParams}
	case !finite(p.BodyG):
		return &ParamError{Field: "body_g", Value: p.BodyG, Wrapped: ErrInvalidParams}
	case !(p.Dt > 0) || math.IsInf(p.Dt, 1):
		return &ParamError{Field: "dt", Value: p.Dt, Wrapped: ErrInvalidParams}
	case !(p.StarMass > 0) || math.IsInf(p.StarMass, 1):
		return &ParamError{Field: "star_mass", Value: p.StarMass, Wrapped: ErrInvalidParams}
	case !(p.MaxSpeed >= 0):
		return &ParamError{Field: "max_speed", Value: p.MaxSpeed, Wrapped: ErrInvalidParams}
	case !(p.MaxBodySpeed >= 0):
		return &ParamError{Field: "max_body_speed", Value: p.MaxBodySpeed, Wrapped: ErrInvalidParams}
	case !(p.ContactRadiusSq >= 0):
		return &ParamError{Field: "contact_radius", Value: p.ContactRadiusSq, Wrapped: ErrInvalidParams}
	case !finite(p.ContactBoost):
		return &ParamError{Field: "contact_boost", Value: p.ContactBoost, Wrapped: ErrInvalidParams}
	case p.Workers < 1:
		return &ParamError{Field: "workers", Value: float64(p.Workers), Wrapped: ErrInvalidParams}
	}
	switch p.BodyUpdate {
	case BodyUpdateSnapshot, BodyUpdateSequential:
	default:
		return &ParamError{Field: "body_update", Wrapped: ErrInvalidParams}
	}
	switch p.Schedule {
	case SchedulePool, ScheduleSpawn:
	default:
		return &ParamError{Field: "schedule", Wrapped: ErrInvalidParams}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// World is the complete mutable simulation state handed to renderers.
type World struct {
	Bounds Bounds
	Params *Params
	Stars  []Star
	Holes  []BlackHole
	Step   int
}
