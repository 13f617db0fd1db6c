package gpssim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosLLH_Sphere(t *testing.T) {
	llh := NewPosLLH(ToRad(40), ToRad(-75), 0)
	xyz := llh.ToXYZSphere()
	assert.InDelta(t, 1263158.364, xyz.X, 1e-3)
	assert.InDelta(t, -4714171.194, xyz.Y, 1e-3)
	assert.InDelta(t, 4095199.861, xyz.Z, 1e-3)
	assert.InDelta(t, Rs, xyz.Norm(), 1e-6)

	back := xyz.ToLLHSphere()
	assert.InDelta(t, 40, ToDeg(back.Lat), 1e-12)
	assert.InDelta(t, -75, ToDeg(back.Lon), 1e-12)
	assert.InDelta(t, 0, back.Hei, 1e-6)
}

func TestPosLLH_Ellipsoid(t *testing.T) {
	llh := NewPosLLH(ToRad(35.73101206), ToRad(139.7396917), 80.33)
	xyz := llh.ToXYZ()
	back := xyz.ToLLH()
	assert.InDelta(t, llh.Lat, back.Lat, 1e-10)
	assert.InDelta(t, llh.Lon, back.Lon, 1e-10)
	assert.InDelta(t, llh.Hei, back.Hei, 1e-3)

	origin := PosXYZ{}
	assert.Equal(t, -Re, origin.ToLLH().Hei)
}

func TestPosLLH_Set(t *testing.T) {
	var llh PosLLH
	require.NoError(t, llh.Set("40 -75 12.5"))
	assert.InDelta(t, ToRad(40), llh.Lat, 1e-15)
	assert.InDelta(t, ToRad(-75), llh.Lon, 1e-15)
	assert.Equal(t, 12.5, llh.Hei)
	assert.Equal(t, "40.00000000 -75.00000000 12.5000", llh.String())
	assert.Equal(t, "llh", llh.Type())

	assert.Error(t, llh.Set("40 -75"))
	assert.Error(t, llh.Set("40 x 0"))
}

func TestPosXYZ_Ops(t *testing.T) {
	a := PosXYZ{X: 1, Y: 2, Z: 3}
	b := PosXYZ{X: 4, Y: -5, Z: 6}
	assert.Equal(t, PosXYZ{X: 5, Y: -3, Z: 9}, a.Add(b))
	assert.Equal(t, PosXYZ{X: -3, Y: 7, Z: -3}, a.Sub(b))
	assert.Equal(t, PosXYZ{X: 2, Y: 4, Z: 6}, a.Scale(2))
	assert.Equal(t, 12.0, a.Dot(b))
	assert.Equal(t, 14.0, a.Norm2())
	assert.InDelta(t, EucDist(&a, &b), PosError(a, b), 1e-12)
}

func TestElevation(t *testing.T) {
	usr := NewPosLLH(0, 0, 0).ToXYZ()
	zenith := PosXYZ{X: usr.X + 20000000}
	assert.InDelta(t, 90, ToDeg(usr.Elevation(zenith)), 1e-9)
	nadir := PosXYZ{X: -20000000}
	assert.InDelta(t, -90, ToDeg(usr.Elevation(nadir)), 1e-9)
}
