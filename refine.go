// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

// Iterative (Gauss-Newton) refinement of a trilateration result on the
// nonlinear range equations |x - P_i| = d_i.

package gpssim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Calculation constants for refinement
const (
	MAX_LOOP_COUNT        = 10    // Maximum number of iteration loops
	CONVERGENCE_THRESHOLD = 0.001 // Convergence threshold [m]
)

// RefineSol contains the result of Refine
type RefineSol struct {
	Pos   PosXYZ        // Refined receiver position
	Cov   [3][3]float64 // Estimation error covariance matrix ((G^T G)^-1), unit variance ranges
	Res   []float64     // Range residuals d_i - |x - P_i| at convergence
	Loops int           // Number of iterations performed
}

// Refine minimizes sum (d_i - |x - P_i|)^2 by Gauss-Newton iteration from init,
// usually the Trilaterate solution. All ranges get equal weight.
func Refine(refs []PosXYZ, ranges []float64, init PosXYZ) (*RefineSol, error) {

	if len(refs) != len(ranges) {
		return nil, fmt.Errorf("%w: %d reference points, %d ranges", ErrDimensionMismatch, len(refs), len(ranges))
	}
	if len(refs) < NREF {
		return nil, fmt.Errorf("%w: %d < %d", ErrInsufficientMeasurements, len(refs), NREF)
	}

	n := len(refs)
	upos := init
	W := mat.NewDiagDense(n, ones(n))

	for loop := 0; loop < MAX_LOOP_COUNT; loop++ {

		// Design matrix and residual vector
		G := mat.NewDense(n, 3, nil)
		dr := mat.NewVecDense(n, nil)
		for i := range refs {
			ri := EucDist(&refs[i], &upos)
			if ri == 0 {
				return nil, fmt.Errorf("receiver coincides with reference point %d", i)
			}
			G.Set(i, 0, DistDx(&refs[i], &upos))
			G.Set(i, 1, DistDy(&refs[i], &upos))
			G.Set(i, 2, DistDz(&refs[i], &upos))
			dr.SetVec(i, ranges[i]-ri)
		}

		dx, cov, err := SolveLS(G, dr, W)
		if err != nil {
			PrintD(2, "\tSolveLS() failed., err= %s\n", err.Error())
			return nil, err
		}
		if DBG_ >= 4 {
			PrintA("G=\n")
			PrintMat(G)
			PrintA("dx=\n")
			PrintMat(dx)
		}

		upos.X += dx.AtVec(0)
		upos.Y += dx.AtVec(1)
		upos.Z += dx.AtVec(2)
		PrintD(2, "\tLOOP %d: XYZ= %.3f %.3f %.3f\n", loop+1, upos.X, upos.Y, upos.Z)

		// Position update < 1mm
		if isConverged(dx, CONVERGENCE_THRESHOLD) {
			sol := &RefineSol{
				Pos:   upos,
				Res:   make([]float64, n),
				Loops: loop + 1,
			}
			for i := range refs {
				sol.Res[i] = ranges[i] - EucDist(&refs[i], &upos)
			}
			for j := 0; j < 3; j++ {
				for k := 0; k < 3; k++ {
					sol.Cov[j][k] = cov.At(j, k)
				}
			}
			return sol, nil
		}
	}

	return nil, fmt.Errorf("number of loop reached max")
}

// isConverged checks if every component of the update is below threshold
func isConverged(dx mat.Vector, threshold float64) bool {
	return math.Abs(dx.AtVec(0)) < threshold &&
		math.Abs(dx.AtVec(1)) < threshold &&
		math.Abs(dx.AtVec(2)) < threshold
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}
