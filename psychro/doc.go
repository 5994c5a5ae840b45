// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package psychro computes thermodynamic properties of moist air in the
// inch-pound system (°F, psia, Btu/lb, ft³/lb).
//
// Given any two independent state variables at a known total pressure, the
// remaining ones are derived either algebraically from the ideal-gas mixture
// model or by bounded root finding on the ASHRAE saturation pressure
// correlation.
//
// Total pressure is never global. Each pressure-dependent operation is a
// method on an immutable Atmosphere value:
//
//	atm, err := psychro.AtmosphereAtAltitude(5280)
//	if err != nil {
//		return err
//	}
//	state, err := atm.StateFromTempRh(75, 0.5)
//
// All functions are pure and safe for concurrent use. Iterative solvers are
// capped and report failures as *Error values whose Kind tells invalid input,
// numerically undefined intermediates and non-convergence apart.
package psychro
