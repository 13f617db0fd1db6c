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
	"math"
	"time"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MCResult is the error statistics of one reference count
type MCResult struct {
	RefCount int     // Number of reference points fed to the estimator
	Trials   int     // Number of trials
	MSE      float64 // Mean squared position error [m^2]
	RMS      float64 // Root mean squared position error [m]
	Mean     float64 // Mean position error [m]
	Std      float64 // Standard deviation of position error [m]
	P95      float64 // 95th percentile of position error [m]
}

// RunMonteCarlo repeats the simulation trials times for every reference count.
//
// Trial t draws ranges to all max(refCounts) reference points from a source
// seeded with cfg.Seed+t; each reference count then uses the first n of those
// ranges, so the counts are compared on the same noise draws.
func RunMonteCarlo(cfg *Config, prov ConstellationProvider, trials int, refCounts []int) ([]MCResult, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if trials <= 0 {
		return nil, fmt.Errorf("%w: trials %d <= 0", ErrInvalidConfig, trials)
	}
	if len(refCounts) == 0 {
		return nil, fmt.Errorf("%w: no reference counts", ErrInvalidConfig)
	}

	refs := prov.RefPoints()
	maxN := slices.Max(refCounts)
	if maxN > len(refs) {
		return nil, fmt.Errorf("%w: reference count %d > constellation size %d", ErrInvalidConfig, maxN, len(refs))
	}
	if minN := slices.Min(refCounts); minN < NREF {
		return nil, fmt.Errorf("%w: reference count %d < %d", ErrInsufficientMeasurements, minN, NREF)
	}
	refs = refs[:maxN]

	seed := cfg.Seed
	if !cfg.HasSeed {
		seed = uint64(time.Now().UnixNano())
	}
	PrintD(2, "\tmonte carlo: seed=%d, trials=%d, counts=%v\n", seed, trials, refCounts)

	errs := make([][]float64, len(refCounts))
	for k := range errs {
		errs[k] = make([]float64, trials)
	}

	for t := 0; t < trials; t++ {
		ranges, err := SimulateRanges(refs, cfg.TruePos, cfg.NoiseStd, NewSource(seed+uint64(t)))
		if err != nil {
			return nil, fmt.Errorf("SimulateRanges() failed, trial=%d, err=%w", t, err)
		}
		for k, n := range refCounts {
			sol, err := Trilaterate(refs[:n], ranges[:n])
			if err != nil {
				return nil, fmt.Errorf("Trilaterate() failed, trial=%d, err=%w", t, err)
			}
			errs[k][t] = PosError(sol.Pos, cfg.TruePos)
		}
	}

	rslt := make([]MCResult, len(refCounts))
	for k, n := range refCounts {
		e := errs[k]
		mse := floats.Dot(e, e) / float64(trials)
		sorted := slices.Clone(e)
		slices.Sort(sorted)
		rslt[k] = MCResult{
			RefCount: n,
			Trials:   trials,
			MSE:      mse,
			RMS:      math.Sqrt(mse),
			Mean:     stat.Mean(e, nil),
			Std:      stat.StdDev(e, nil),
			P95:      stat.Quantile(0.95, stat.Empirical, sorted, nil),
		}
		PrintD(2, "\tn=%d: rms=%.3f, mean=%.3f, p95=%.3f\n", n, rslt[k].RMS, rslt[k].Mean, rslt[k].P95)
	}
	return rslt, nil
}

// PrintMCResults writes the Monte Carlo table
func PrintMCResults(w io.Writer, rslt []MCResult) {
	fmt.Fprintf(w, "%% refs   trials        rms(m)       mean(m)        std(m)        p95(m)\n")
	for _, r := range rslt {
		fmt.Fprintf(w, "%6d %8d %13.3f %13.3f %13.3f %13.3f\n", r.RefCount, r.Trials, r.RMS, r.Mean, r.Std, r.P95)
	}
}
