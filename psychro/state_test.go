// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFromTempRh(t *testing.T) {
	s, err := StandardAtmosphere().StateFromTempRh(75, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 75.0, s.DryBulb)
	assert.InDelta(t, 0.5, s.RelativeHumidity, 1e-12)
	assert.InEpsilon(t, 0.2161, s.VaporPressure, 0.01)
	assert.InEpsilon(t, 0.00929, s.HumidityRatio, 0.01)
	assert.InEpsilon(t, 62.5, s.WetBulb, 0.01)
	assert.InEpsilon(t, 28.1, s.Enthalpy, 0.01)
	assert.InEpsilon(t, 13.68, s.SpecificVolume, 0.01)
	require.NotNil(t, s.DewPoint)
	assert.InDelta(t, 55.119904, *s.DewPoint, 1e-4)
}

func TestStateOfDryAir(t *testing.T) {
	s, err := StandardAtmosphere().StateFromTempRh(75, 0)
	require.NoError(t, err)
	assert.Nil(t, s.DewPoint)
	assert.Zero(t, s.VaporPressure)
	assert.Less(t, s.WetBulb, 75.0)
}

func TestStateFromTempHumidityRatio(t *testing.T) {
	s, err := StandardAtmosphere().StateFromTempHumidityRatio(75, 0.009235667267348924)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.RelativeHumidity, 1e-9)

	_, err = StandardAtmosphere().StateFromTempHumidityRatio(75, 0.03)
	assert.True(t, IsInvalidInput(err), "supersaturated: %v", err)
}

func TestResolveConsistency(t *testing.T) {
	ref, err := StandardAtmosphere().StateFromTempRh(75, 0.5)
	require.NoError(t, err)
	values := map[Property]float64{
		PropDryBulb:          ref.DryBulb,
		PropWetBulb:          ref.WetBulb,
		PropDewPoint:         *ref.DewPoint,
		PropRelativeHumidity: ref.RelativeHumidity,
		PropHumidityRatio:    ref.HumidityRatio,
		PropVaporPressure:    ref.VaporPressure,
		PropEnthalpy:         ref.Enthalpy,
		PropSpecificVolume:   ref.SpecificVolume,
	}
	pairs := [][2]Property{
		{PropDryBulb, PropWetBulb},
		{PropDryBulb, PropDewPoint},
		{PropDryBulb, PropRelativeHumidity},
		{PropDryBulb, PropHumidityRatio},
		{PropDryBulb, PropVaporPressure},
		{PropDryBulb, PropEnthalpy},
		{PropDryBulb, PropSpecificVolume},
		{PropWetBulb, PropDewPoint},
		{PropWetBulb, PropHumidityRatio},
		{PropWetBulb, PropVaporPressure},
		{PropWetBulb, PropRelativeHumidity},
		{PropWetBulb, PropSpecificVolume},
		{PropDewPoint, PropRelativeHumidity},
		{PropDewPoint, PropEnthalpy},
		{PropDewPoint, PropSpecificVolume},
		{PropRelativeHumidity, PropHumidityRatio},
		{PropRelativeHumidity, PropVaporPressure},
		{PropRelativeHumidity, PropEnthalpy},
		{PropRelativeHumidity, PropSpecificVolume},
		{PropHumidityRatio, PropEnthalpy},
		{PropHumidityRatio, PropSpecificVolume},
		{PropVaporPressure, PropEnthalpy},
		{PropVaporPressure, PropSpecificVolume},
		{PropEnthalpy, PropSpecificVolume},
	}

	for _, pair := range pairs {
		p1, p2 := pair[0], pair[1]
		t.Run(p1.String()+"+"+p2.String(), func(t *testing.T) {
			s, err := StandardAtmosphere().Resolve(p1, values[p1], p2, values[p2])
			require.NoError(t, err)
			assert.InDelta(t, ref.DryBulb, s.DryBulb, 1e-3)
			assert.InDelta(t, ref.HumidityRatio, s.HumidityRatio, 1e-6)
			assert.InDelta(t, ref.Enthalpy, s.Enthalpy, 1e-3)

			// Swapped order resolves the same state.
			swapped, err := StandardAtmosphere().Resolve(p2, values[p2], p1, values[p1])
			require.NoError(t, err)
			assert.Equal(t, s, swapped)
		})
	}
}

func TestResolveRejectsPairs(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Property
	}{
		{"duplicate", PropEnthalpy, PropEnthalpy},
		{"dew point and humidity ratio", PropDewPoint, PropHumidityRatio},
		{"humidity ratio and vapor pressure", PropHumidityRatio, PropVaporPressure},
		{"wet bulb and enthalpy", PropWetBulb, PropEnthalpy},
		{"unknown property", Property(42), PropDryBulb},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := StandardAtmosphere().Resolve(test.p1, 50, test.p2, 0.01)
			assert.True(t, IsInvalidInput(err), "got %v", err)
		})
	}
}

func TestResolveAlongConstantLines(t *testing.T) {
	s, err := StandardAtmosphere().Resolve(PropWetBulb, 60, PropRelativeHumidity, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 71.890861, s.DryBulb, 1e-4)
	assert.InDelta(t, 60.0, s.WetBulb, 1e-4)
	assert.InDelta(t, 0.5, s.RelativeHumidity, 1e-6)

	s, err = StandardAtmosphere().Resolve(PropEnthalpy, 28, PropSpecificVolume, 13.7)
	require.NoError(t, err)
	assert.InDelta(t, 76.106166, s.DryBulb, 1e-4)
	assert.InDelta(t, 0.008891, s.HumidityRatio, 1e-6)
	assert.InDelta(t, 28.0, s.Enthalpy, 1e-6)
	assert.InDelta(t, 13.7, s.SpecificVolume, 1e-6)

	_, err = StandardAtmosphere().Resolve(PropWetBulb, 60, PropSpecificVolume, 15)
	assert.True(t, IsNumericDomain(err), "got %v", err)
}

func TestResolveOnZeroAtmosphere(t *testing.T) {
	_, err := Atmosphere{}.StateFromTempRh(75, 0.5)
	assert.True(t, IsInvalidInput(err), "got %v", err)
}

func TestParseProperty(t *testing.T) {
	for p, name := range propertyNames {
		got, err := ParseProperty(name)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParseProperty("Wet-Bulb")
	require.NoError(t, err)
	assert.Equal(t, PropWetBulb, got)

	_, err = ParseProperty("humidity")
	assert.True(t, IsInvalidInput(err), "got %v", err)
	assert.Equal(t, "Property(42)", Property(42).String())
}

func TestStatesAcrossAtmospheres(t *testing.T) {
	altitudes := []float64{-1000, 0, 2500, 5000, 7500, 10000}
	states, err := Map(context.Background(), altitudes, func(feet float64) (State, error) {
		atm, err := AtmosphereAtAltitude(feet)
		if err != nil {
			return State{}, err
		}
		return atm.StateFromTempRh(75, 0.5)
	})
	require.NoError(t, err)
	require.Len(t, states, len(altitudes))

	for i, feet := range altitudes {
		atm, err := AtmosphereAtAltitude(feet)
		require.NoError(t, err)
		want, err := atm.StateFromTempRh(75, 0.5)
		require.NoError(t, err)
		assert.Equal(t, want, states[i], "at %g ft", feet)
	}
	// Thinner air holds more water per pound at the same relative humidity.
	for i := 1; i < len(states); i++ {
		assert.Greater(t, states[i].HumidityRatio, states[i-1].HumidityRatio)
		assert.Greater(t, states[i].SpecificVolume, states[i-1].SpecificVolume)
	}
}

func TestPropertyText(t *testing.T) {
	text, err := PropSpecificVolume.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "specific-volume", string(text))

	var p Property
	require.NoError(t, p.UnmarshalText([]byte("dew-point")))
	assert.Equal(t, PropDewPoint, p)

	_, err = Property(0).MarshalText()
	assert.True(t, IsInvalidInput(err), "got %v", err)
}
