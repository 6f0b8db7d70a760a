// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import "math/big"

// satSub returns x-y floored at zero.
func satSub(x, y *big.Int) *big.Int {
	if x.Cmp(y) <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(x, y)
}

// linearDecrease returns (an approximation of) the linear function passing
// through (xStart, yStart) and (xEnd, yEnd) at x. If x is outside the range
// of xStart and xEnd, the value of y at the closest endpoint is returned.
//
// Integer division truncates, so the ratio with magnitude >= 1 is the one
// divided: when the drop per step would be below one unit, the step count is
// divided by steps-per-unit instead, keeping resolution.
//
// The endpoint checks fire before either divisor can be zero: xSpan == 0
// implies xEnd <= xStart, which leaves no x strictly inside the range, and a
// zero ySpan short-circuits to yStart below.
func linearDecrease(xStart, yStart, xEnd, yEnd, x *big.Int) *big.Int {
	if x.Cmp(xEnd) >= 0 {
		return new(big.Int).Set(yEnd)
	}
	if x.Cmp(xStart) <= 0 {
		return new(big.Int).Set(yStart)
	}

	steps := satSub(x, xStart)
	xSpan := satSub(xEnd, xStart)
	ySpan := satSub(yStart, yEnd)

	if ySpan.Sign() == 0 {
		// flat or inverted price range, nothing to interpolate
		return new(big.Int).Set(yStart)
	}

	if ySpan.Cmp(xSpan) > 0 {
		yPerX := new(big.Int).Div(ySpan, xSpan)
		return satSub(yStart, new(big.Int).Mul(steps, yPerX))
	}
	xPerY := new(big.Int).Div(xSpan, ySpan)
	return satSub(yStart, new(big.Int).Div(steps, xPerY))
}
