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

	"gonum.org/v1/gonum/mat"
)

// CalcDop returns the dilution of precision of the reference geometry seen from pos:
// 'pdop', 'hdop' and 'vdop'. There is no clock term, so no gdop.
// Reference points below the horizon are included.
func CalcDop(refs []PosXYZ, pos PosXYZ) (map[string]float64, error) {

	n := len(refs)
	if n < 3 {
		return nil, fmt.Errorf("%w: %d < 3", ErrInsufficientMeasurements, n)
	}

	// Line of sight design matrix in ENU
	G := mat.NewDense(n, 3, nil)
	for i := range refs {
		ri := EucDist(&refs[i], &pos)
		if ri == 0 {
			return nil, fmt.Errorf("receiver coincides with reference point %d", i)
		}
		enu := refs[i].ToENU(pos)
		G.Set(i, 0, -enu.E/ri)
		G.Set(i, 1, -enu.N/ri)
		G.Set(i, 2, -enu.U/ri)
		PrintD(3, "\t%2d: elev=%8.3f, azim=%8.3f\n", i, ToDeg(enu.Elevation()), ToDeg(enu.Azimuth()))
	}

	var GtG mat.Dense
	GtG.Mul(G.T(), G)
	var cov mat.Dense
	if err := cov.Inverse(&GtG); err != nil {
		return nil, fmt.Errorf("failed to calculate inverse of matrix, G^T G: %w", err)
	}

	return map[string]float64{
		"pdop": math.Sqrt(cov.At(0, 0) + cov.At(1, 1) + cov.At(2, 2)),
		"hdop": math.Sqrt(cov.At(0, 0) + cov.At(1, 1)),
		"vdop": math.Sqrt(cov.At(2, 2)),
	}, nil
}
