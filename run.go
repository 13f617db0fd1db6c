// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

package gpssim

import (
	"fmt"
	"time"
)

// Run performs one simulation: take the first cfg.RefCount reference points,
// simulate noisy ranges from cfg.TruePos, estimate the position and evaluate it.
func Run(cfg *Config, prov ConstellationProvider) (*Report, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	refs := prov.RefPoints()
	if cfg.RefCount > len(refs) {
		return nil, fmt.Errorf("%w: reference count %d > constellation size %d", ErrInvalidConfig, cfg.RefCount, len(refs))
	}
	refs = refs[:cfg.RefCount]

	seed := cfg.Seed
	if !cfg.HasSeed {
		seed = uint64(time.Now().UnixNano())
	}
	PrintD(2, "\tseed: %d, refs: %d, noise: %.3f\n", seed, len(refs), cfg.NoiseStd)

	ranges, err := SimulateRanges(refs, cfg.TruePos, cfg.NoiseStd, NewSource(seed))
	if err != nil {
		return nil, fmt.Errorf("SimulateRanges() failed, err=%w", err)
	}

	sol, err := Trilaterate(refs, ranges)
	if err != nil {
		return nil, fmt.Errorf("Trilaterate() failed, err=%w", err)
	}

	rep := NewReport(cfg.TruePos, sol)
	rep.NumRefs = len(refs)
	rep.Seed = seed
	rep.NoiseStd = cfg.NoiseStd
	rep.Ranges = ranges

	// DOP is informative only
	dop, err := CalcDop(refs, cfg.TruePos)
	if err != nil {
		PrintD(1, "\tCalcDop() failed, err=%s\n", err.Error())
	} else {
		rep.Dop = dop
	}

	if cfg.Refine {
		rsol, err := Refine(refs, ranges, sol.Pos)
		if err != nil {
			return nil, fmt.Errorf("Refine() failed, err=%w", err)
		}
		rep.SetRefined(rsol)
	}

	return rep, nil
}
