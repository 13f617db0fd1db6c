// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

package gpssim

import "fmt"

// Config contains the options of one simulation run
type Config struct {
	NoiseStd float64 // Range noise standard deviation [m]. 0 for exact ranges
	RefCount int     // Number of reference points fed to the estimator (first RefCount of the constellation)
	Seed     uint64  // Seed of the range noise
	HasSeed  bool    // If false, a seed is picked from the clock and reported
	TruePos  PosXYZ  // True receiver position
	Refine   bool    // If true, refine the linear estimate by Gauss-Newton iteration
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	llh := NewPosLLH(ToRad(40.0), ToRad(-75.0), 0)
	return &Config{
		NoiseStd: 5,                 // Typical civilian GPS range error [m]
		RefCount: NREF,              // Use first 4 reference points
		Seed:     0,                 // Not used unless HasSeed
		HasSeed:  false,             // Seed from clock
		TruePos:  llh.ToXYZSphere(), // 40N, 75W on the spherical earth
		Refine:   false,             // Linear estimate only
	}
}

// Validate checks the option ranges
func (cfg *Config) Validate() error {
	if cfg.NoiseStd < 0 {
		return fmt.Errorf("%w: noise std %f < 0", ErrInvalidConfig, cfg.NoiseStd)
	}
	if cfg.RefCount < NREF {
		return fmt.Errorf("%w: reference count %d < %d", ErrInvalidConfig, cfg.RefCount, NREF)
	}
	return nil
}
