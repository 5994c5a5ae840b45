// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumidityRatioRoundTrip(t *testing.T) {
	for _, atm := range []Atmosphere{StandardAtmosphere(), {pressure: 12.2278}, {pressure: 16}} {
		for w := 2e-6; w < 0.05; w *= 1.3 {
			pv, err := atm.VaporPressureFromHumidityRatio(w)
			require.NoError(t, err)
			got, err := atm.HumidityRatioFromVaporPressure(pv)
			require.NoError(t, err)
			assert.InDelta(t, w, got, 1e-8, "w=%g at %v", w, atm)
		}
	}
}

func TestVaporPressureFromHumidityRatioDryAir(t *testing.T) {
	for _, w := range []float64{0, 5e-7} {
		pv, err := StandardAtmosphere().VaporPressureFromHumidityRatio(w)
		require.NoError(t, err)
		assert.Zero(t, pv)
	}
}

func TestHumidityConversionFailures(t *testing.T) {
	_, err := StandardAtmosphere().HumidityRatioFromVaporPressure(StandardPressure)
	assert.True(t, IsNumericDomain(err), "pv = P: got %v", err)

	_, err = StandardAtmosphere().HumidityRatioFromVaporPressure(-0.01)
	assert.True(t, IsInvalidInput(err), "negative pv: got %v", err)

	_, err = StandardAtmosphere().VaporPressureFromHumidityRatio(-0.001)
	assert.True(t, IsInvalidInput(err), "negative w: got %v", err)

	_, err = VaporPressureFromTempRh(70, 1.2)
	assert.True(t, IsInvalidInput(err), "rh > 1: got %v", err)

	_, err = Atmosphere{}.HumidityRatioFromVaporPressure(0.2)
	assert.True(t, IsInvalidInput(err), "zero atmosphere: got %v", err)
}

func TestVaporPressureFromTempRh(t *testing.T) {
	pv, err := VaporPressureFromTempRh(75, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.215037, pv, 1e-6)
}

func TestSaturationHumidityRatio(t *testing.T) {
	w, err := StandardAtmosphere().SaturationHumidityRatio(75)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.018750, w, 1e-3)

	// Thinner air holds more water per pound of dry air.
	thin, err := AtmosphereAtAltitude(5000)
	require.NoError(t, err)
	wThin, err := thin.SaturationHumidityRatio(75)
	require.NoError(t, err)
	assert.Greater(t, wThin, w)
}

func TestRelativeHumidity(t *testing.T) {
	rh, err := RelativeHumidity(75, 0.215037)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rh, 1e-5)

	_, err = RelativeHumidity(75, 0.5)
	assert.True(t, IsInvalidInput(err), "supersaturated: got %v", err)
}
