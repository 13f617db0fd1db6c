// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

// Implements linearized least squares trilateration (multilateration).

package gpssim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// TrilatSol holds the result of Trilaterate
type TrilatSol struct {
	Pos    PosXYZ     // Estimated receiver position (least squares solution)
	Rank   int        // Effective rank of the linearized design matrix (3 when well posed)
	Sv     []float64  // Singular values of the design matrix (descending)
	Cond   float64    // Condition number s[0]/s[last] (+Inf when rank deficient)
	Res    []float64  // Residuals A x - b of the linear system
	DesMat mat.Matrix // Design matrix A ((N-1) x 3)
	RhsVec mat.Vector // Right hand side b (N-1)
}

// Trilaterate estimates the receiver position from reference positions and ranges.
//
// The squared range equation of refs[0] is subtracted from that of every other
// reference, which cancels the |x|^2 term and leaves N-1 linear equations
//
//	2 (P_i - P_0) . x = d_0^2 - d_i^2 - |P_0|^2 + |P_i|^2
//
// solved by SVD for the minimum norm least squares solution.
// refs[0] is always the elimination reference.
//
// Returns ErrDimensionMismatch if len(refs) != len(ranges) and
// ErrInsufficientMeasurements if fewer than 4 pairs are given.
// Rank deficient geometry is not an error.
func Trilaterate(refs []PosXYZ, ranges []float64) (*TrilatSol, error) {

	if len(refs) != len(ranges) {
		return nil, fmt.Errorf("%w: %d reference points, %d ranges", ErrDimensionMismatch, len(refs), len(ranges))
	}
	if len(refs) < NREF {
		return nil, fmt.Errorf("%w: %d < %d", ErrInsufficientMeasurements, len(refs), NREF)
	}

	A, b := linearize(refs, ranges)
	if DBG_ >= 4 {
		PrintA("A=\n")
		PrintMat(A)
		PrintA("b=\n")
		PrintMat(b)
	}

	x, rank, sv, err := SolveMinNorm(A, b)
	if err != nil {
		return nil, fmt.Errorf("SolveMinNorm() failed, err=%w", err)
	}

	sol := &TrilatSol{
		Pos:    PosXYZ{X: x.AtVec(0), Y: x.AtVec(1), Z: x.AtVec(2)},
		Rank:   rank,
		Sv:     sv,
		Cond:   math.Inf(1),
		DesMat: A,
		RhsVec: b,
	}
	if rank == len(sv) {
		sol.Cond = sv[0] / sv[len(sv)-1]
	}

	// Residuals
	var r mat.VecDense
	r.MulVec(A, x)
	r.SubVec(&r, b)
	sol.Res = make([]float64, r.Len())
	for i := range sol.Res {
		sol.Res[i] = r.AtVec(i)
	}

	PrintAIf(DBG_ >= 2, "\ttrilat: n=%d, rank=%d, cond=%.3e, pos=%s\n", len(refs), rank, sol.Cond, &sol.Pos)
	return sol, nil
}

// linearize builds A ((N-1) x 3) and b (N-1) with refs[0] as the reference
func linearize(refs []PosXYZ, ranges []float64) (*mat.Dense, *mat.VecDense) {
	p0 := refs[0]
	d0 := ranges[0]
	n := len(refs) - 1

	A := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)
	for i := 1; i < len(refs); i++ {
		pi := refs[i]
		di := ranges[i]
		row := pi.Sub(p0).Scale(2)
		A.SetRow(i-1, row.Slice())
		b.SetVec(i-1, SQ(d0)-SQ(di)-p0.Norm2()+pi.Norm2())
		if DBG_ >= 3 {
			PrintA("\t%2d: P=(%s), d=%.3f, b=%.6e\n", i, pi.String(), di, b.AtVec(i-1))
		}
	}
	return A, b
}
