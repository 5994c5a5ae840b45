// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdrung/psychrometrics/isoline"
)

func TestChartJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "chart")
	require.NoError(t, err)

	var geo ChartGeometry
	require.NoError(t, json.Unmarshal(out, &geo))
	assert.Equal(t, 14.696, geo.Pressure)
	assert.InDelta(t, 0.676253, geo.MaxVaporPressure, 1e-6)
	assert.InDelta(t, 88.952669, geo.CutoffTemp, 1e-5)
	assert.Equal(t, isoline.DefaultMinTemp, geo.EnthalpyBorder.Start.TempF)
	assert.InDelta(t, 0.122462, geo.EnthalpyBorder.Start.VaporPressure, 1e-6)
	assert.InDelta(t, 84.552669, geo.EnthalpyBorder.End.TempF, 1e-5)

	require.NotEmpty(t, geo.Boundary)
	first, last := geo.Boundary[0], geo.Boundary[len(geo.Boundary)-1]
	assert.Equal(t, first, last)
	assert.Equal(t, isoline.DefaultMaxTemp, first.TempF)
	assert.Zero(t, first.VaporPressure)
}

func TestChartText(t *testing.T) {
	out, err := execute(t, "chart")
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "pressure           14.6960 psia\n"), text)
	assert.Contains(t, text, "max-vapor-pressure 0.676253 psia\n")
	assert.Contains(t, text, "cutoff             88.9527 °F\n")
	assert.Contains(t, text, "# boundary\n120.0000 0.000000\n32.0000 0.000000\n")
}
