// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

package gpssim

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SimulateRanges returns the distances from truePos to each reference point,
// each perturbed by an independent N(0, noiseStd^2) draw taken from src.
//
// Draws are taken in reference order, so the same seed gives the same ranges.
// Noisy ranges are not clamped and may be negative.
// src may be nil only when noiseStd is 0.
func SimulateRanges(refs []PosXYZ, truePos PosXYZ, noiseStd float64, src rand.Source) ([]float64, error) {

	if noiseStd < 0 {
		return nil, fmt.Errorf("%w: noise std %f < 0", ErrInvalidNoise, noiseStd)
	}
	if noiseStd > 0 && src == nil {
		return nil, fmt.Errorf("%w: no random source for noise std %f", ErrInvalidNoise, noiseStd)
	}

	noise := distuv.Normal{Mu: 0, Sigma: noiseStd, Src: src}

	ranges := make([]float64, len(refs))
	for i := range refs {
		ranges[i] = EucDist(&refs[i], &truePos)
		if noiseStd > 0 {
			e := noise.Rand()
			PrintD(3, "\t%2d: range=%.3f, noise=%.3f\n", i, ranges[i], e)
			ranges[i] += e
		}
	}
	return ranges, nil
}

// NewSource returns a seeded random source for SimulateRanges
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}
