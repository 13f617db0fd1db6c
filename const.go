// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

package gpssim

const (
	PI   = 3.1415926535897932  // Pi
	C    = 2.99792458e8        // Speed of light [m/s]
	Re   = 6378137.0           // Earth's radius (WGS-84 semi-major axis) [m]
	Fe   = 1.0 / 298.257223563 // Earth's flattening
	Rs   = 6371000.0           // Radius of the spherical earth used by the simulation [m]
	L1   = 1575420000.0        // L1 frequency of GPS [Hz]
	KB   = 1.38e-23            // Boltzmann constant [J/K]
	T0   = 290.0               // Standard system noise temperature [K]
	NREF = 4                   // Minimum number of reference points for 3D trilateration
)
