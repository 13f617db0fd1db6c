// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

package gpssim

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

// ConstellationProvider supplies reference point positions (satellites).
// Geometry is not checked: near collinear or coplanar points are accepted.
type ConstellationProvider interface {
	RefPoints() []PosXYZ
}

// Fixed, ordered set of reference points
type Constellation struct {
	points []PosXYZ
}

// NewConstellation copies points into a new constellation.
// At least 4 points are needed.
func NewConstellation(points []PosXYZ) (*Constellation, error) {
	if len(points) < NREF {
		return nil, fmt.Errorf("%w: constellation has %d points < %d", ErrInsufficientMeasurements, len(points), NREF)
	}
	return &Constellation{points: slices.Clone(points)}, nil
}

// RefPoints returns a copy of the points in order
func (c *Constellation) RefPoints() []PosXYZ {
	return slices.Clone(c.points)
}

func (c *Constellation) Len() int {
	return len(c.points)
}

// First returns the first n points. n larger than Len() is an error.
func (c *Constellation) First(n int) ([]PosXYZ, error) {
	if n < 0 || n > len(c.points) {
		return nil, fmt.Errorf("%w: requested %d of %d reference points", ErrInvalidConfig, n, len(c.points))
	}
	return slices.Clone(c.points[:n]), nil
}

// Orbit radius of the default constellation [m]
const ORBIT_RADIUS = 20000000.0

// DefaultConstellation returns six points at 20,000 km:
// one on each axis and one in each coordinate plane
func DefaultConstellation() *Constellation {
	return &Constellation{points: []PosXYZ{
		{X: 20000000, Y: 0, Z: 0},        // X axis
		{X: 0, Y: 20000000, Z: 0},        // Y axis
		{X: 0, Y: 0, Z: 20000000},        // Z axis
		{X: 14142135, Y: 14142135, Z: 0}, // XY plane
		{X: 14142135, Y: 0, Z: 14142135}, // XZ plane
		{X: 0, Y: 14142135, Z: 14142135}, // YZ plane
	}}
}

// Golden angle [rad]
var goldenAngle = PI * (3 - math.Sqrt(5))

// SpreadConstellation places n points on a sphere of the given radius
// along a golden angle spiral, which keeps them well separated for any n.
func SpreadConstellation(n int, radius float64) (*Constellation, error) {
	if n < NREF {
		return nil, fmt.Errorf("%w: constellation has %d points < %d", ErrInsufficientMeasurements, n, NREF)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius %f", ErrInvalidConfig, radius)
	}
	points := make([]PosXYZ, n)
	for i := 0; i < n; i++ {
		z := 1 - 2*(float64(i)+0.5)/float64(n) // (-1, 1)
		r := math.Sqrt(1 - z*z)
		t := goldenAngle * float64(i)
		points[i] = PosXYZ{
			X: radius * r * math.Cos(t),
			Y: radius * r * math.Sin(t),
			Z: radius * z,
		}
	}
	return &Constellation{points: points}, nil
}
