// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.15
//

// Closed-form link budget of the GPS L1 signal and the transmit power
// a spoofer needs to overpower it. Independent of the trilateration.

package gpssim

import (
	"fmt"
	"io"
	"math"
)

// Free space path loss [dB] for frequency [GHz] and distance [km]
func FreeSpacePathLoss(freqGHz, distKm float64) float64 {
	return 20*math.Log10(distKm) + 20*math.Log10(freqGHz) + 92.45
}

// LinkParam is one point of a transmission chain
type LinkParam struct {
	Name    string  // Label of the point
	Pt      float64 // Transmit power [dBW]
	Gt      float64 // Transmit antenna gain [dB]
	Gr      float64 // Receive antenna gain [dB]
	FreqGHz float64 // Carrier frequency [GHz]
	DistKm  float64 // Distance [km]
	Lm      float64 // Miscellaneous losses [dB]
}

// GPS L1 from a satellite to a typical ground receiver
func NewL1LinkParam() *LinkParam {
	return &LinkParam{
		Name:    "Earth Receiver",
		Pt:      13,       // [dBW]
		Gt:      13,       // [dB]
		Gr:      -3,       // [dB] (typical GPS receiver)
		FreqGHz: L1 / 1e9, // [GHz]
		DistKm:  20200,    // [km]
		Lm:      2,        // [dB]
	}
}

// Received power [dBW]
func LinkBudget(p *LinkParam) float64 {
	return p.Pt + p.Gt + p.Gr - FreeSpacePathLoss(p.FreqGHz, p.DistKm) - p.Lm
}

// CarrierToNoise returns C/N0 [dB-Hz] and noise density N0 [dBW/Hz]
// for received power pr [dBW] and system temperature tsys [K]
func CarrierToNoise(pr, tsys float64) (cn0, n0 float64) {
	n0 = 10 * math.Log10(KB*tsys)
	return pr - n0, n0
}

// LinkResult is the evaluation of one LinkParam
type LinkResult struct {
	Name string
	Pr   float64 // Received power [dBW]
	N0   float64 // Noise density [dBW/Hz]
	CN0  float64 // Carrier to noise density ratio [dB-Hz]
}

// EvalLinkChain evaluates each point at system temperature tsys [K]
func EvalLinkChain(chain []LinkParam, tsys float64) []LinkResult {
	rslt := make([]LinkResult, len(chain))
	for i := range chain {
		pr := LinkBudget(&chain[i])
		cn0, n0 := CarrierToNoise(pr, tsys)
		rslt[i] = LinkResult{Name: chain[i].Name, Pr: pr, N0: n0, CN0: cn0}
	}
	return rslt
}

// Default transmission chain: low orbit, mid orbit and the ground
func DefaultLinkChain() []LinkParam {
	f := L1 / 1e9
	return []LinkParam{
		{Name: "Space Segment", Pt: 13, Gt: 13, Gr: 0, FreqGHz: f, DistKm: 500, Lm: 1},
		{Name: "Mid Orbit", Pt: 13, Gt: 13, Gr: 0, FreqGHz: f, DistKm: 10000, Lm: 1.5},
		{Name: "Earth Receiver", Pt: 13, Gt: 13, Gr: -3, FreqGHz: f, DistKm: 20200, Lm: 2},
	}
}

func PrintLinkResults(w io.Writer, rslt []LinkResult) {
	for _, r := range rslt {
		fmt.Fprintf(w, "\n--- %s ---\n", r.Name)
		fmt.Fprintf(w, "Received Power: %.2f dBW\n", r.Pr)
		fmt.Fprintf(w, "Noise Density:  %.2f dBW/Hz\n", r.N0)
		fmt.Fprintf(w, "C/N0:           %.2f dB-Hz\n", r.CN0)
	}
}

// RequiredSpoofPower returns the transmit power [dBW] a spoofer at spoof.DistKm needs
// so that its signal arrives marginDB above the real received power prReal [dBW].
// spoof.Pt is ignored.
func RequiredSpoofPower(prReal float64, spoof *LinkParam, marginDB float64) float64 {
	prSpoof := prReal + marginDB
	return prSpoof - spoof.Gt - spoof.Gr + FreeSpacePathLoss(spoof.FreqGHz, spoof.DistKm) + spoof.Lm
}
