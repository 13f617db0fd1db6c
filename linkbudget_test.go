package gpssim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkBudget_L1(t *testing.T) {
	p := NewL1LinkParam()
	assert.InDelta(t, 182.50495, FreeSpacePathLoss(p.FreqGHz, p.DistKm), 1e-4)

	pr := LinkBudget(p)
	assert.InDelta(t, -161.50495, pr, 1e-4)

	cn0, n0 := CarrierToNoise(pr, T0)
	assert.InDelta(t, -203.97723, n0, 1e-4)
	assert.InDelta(t, 42.47227, cn0, 1e-4)
}

func TestEvalLinkChain(t *testing.T) {
	rslt := EvalLinkChain(DefaultLinkChain(), T0)
	require.Len(t, rslt, 3)
	assert.Equal(t, "Earth Receiver", rslt[2].Name)
	assert.InDelta(t, 42.47227, rslt[2].CN0, 1e-4)
	// Received power drops with distance
	assert.Greater(t, rslt[0].Pr, rslt[1].Pr)
	assert.Greater(t, rslt[1].Pr, rslt[2].Pr)

	var buf bytes.Buffer
	PrintLinkResults(&buf, rslt)
	assert.Contains(t, buf.String(), "--- Mid Orbit ---")
	assert.Contains(t, buf.String(), "C/N0:           42.47 dB-Hz")
}

func TestRequiredSpoofPower(t *testing.T) {
	prReal := LinkBudget(NewL1LinkParam())
	spoof := &LinkParam{Gt: 5, Gr: -3, FreqGHz: L1 / 1e9, DistKm: 5, Lm: 1}
	pt := RequiredSpoofPower(prReal, spoof, 10)
	assert.InDelta(t, -42.12763, pt, 1e-4)

	// The spoofed signal arrives exactly margin above the real one
	spoof.Pt = pt
	assert.InDelta(t, prReal+10, LinkBudget(spoof), 1e-9)
}
