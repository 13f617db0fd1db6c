// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

package gpssim

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
)

// PosError returns the Euclidean distance between the estimate and the truth [m]
func PosError(est, truth PosXYZ) float64 {
	return floats.Distance(est.Slice(), truth.Slice(), 2)
}

// Report holds the externally visible result of one estimation run
type Report struct {
	TruePos   PosXYZ             // Ground truth receiver position
	EstPos    PosXYZ             // Linear least squares estimate
	ErrM      float64            // |EstPos - TruePos| [m]
	RefPos    *PosXYZ            // Refined estimate (nil if refinement not requested)
	RefErrM   float64            // |RefPos - TruePos| [m]
	NumRefs   int                // Number of reference points used
	Seed      uint64             // Seed of the range noise
	NoiseStd  float64            // Range noise standard deviation [m]
	Rank      int                // Rank of the linearized system
	Cond      float64            // Condition number of the linearized system
	Dop       map[string]float64 // Geometry DOP at the true position (nil if not available)
	EstLLH    PosLLH             // Estimate on the spherical earth
	TrueLLH   PosLLH             // Truth on the spherical earth
	Ranges    []float64          // Simulated ranges
	Residuals []float64          // Residuals of the linearized system
}

// NewReport evaluates an estimate against the truth
func NewReport(truth PosXYZ, sol *TrilatSol) *Report {
	return &Report{
		TruePos:   truth,
		EstPos:    sol.Pos,
		ErrM:      PosError(sol.Pos, truth),
		Rank:      sol.Rank,
		Cond:      sol.Cond,
		EstLLH:    sol.Pos.ToLLHSphere(),
		TrueLLH:   truth.ToLLHSphere(),
		Residuals: sol.Res,
	}
}

// SetRefined records a refined estimate
func (r *Report) SetRefined(sol *RefineSol) {
	pos := sol.Pos
	r.RefPos = &pos
	r.RefErrM = PosError(pos, r.TruePos)
}

// Print writes the console report
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Reference points:   %d\n", r.NumRefs)
	fmt.Fprintf(w, "Noise std:          %.3f m (seed %d)\n", r.NoiseStd, r.Seed)
	fmt.Fprintf(w, "True position:      %16.3f %16.3f %16.3f\n", r.TruePos.X, r.TruePos.Y, r.TruePos.Z)
	fmt.Fprintf(w, "Estimated position: %16.3f %16.3f %16.3f\n", r.EstPos.X, r.EstPos.Y, r.EstPos.Z)
	fmt.Fprintf(w, "Position error:     %.3f meters\n", r.ErrM)
	fmt.Fprintf(w, "Estimated lat/lon:  %.6f deg, %.6f deg\n", ToDeg(r.EstLLH.Lat), ToDeg(r.EstLLH.Lon))
	if r.RefPos != nil {
		fmt.Fprintf(w, "Refined position:   %16.3f %16.3f %16.3f\n", r.RefPos.X, r.RefPos.Y, r.RefPos.Z)
		fmt.Fprintf(w, "Refined error:      %.3f meters\n", r.RefErrM)
	}
	fmt.Fprintf(w, "Rank / cond:        %d / %.3e\n", r.Rank, r.Cond)
	if r.Dop != nil {
		fmt.Fprintf(w, "PDOP/HDOP/VDOP:     %.3f / %.3f / %.3f\n", r.Dop["pdop"], r.Dop["hdop"], r.Dop["vdop"])
	}
}
