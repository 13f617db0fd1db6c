// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

package gpssim

import "errors"

// Errors returned before any linear solve is attempted.
// Callers test them with errors.Is; they are wrapped with details.
var (
	ErrInsufficientMeasurements = errors.New("insufficient measurements")
	ErrDimensionMismatch        = errors.New("dimension mismatch")
	ErrInvalidNoise             = errors.New("invalid noise setting")
	ErrInvalidConfig            = errors.New("invalid config")
)
