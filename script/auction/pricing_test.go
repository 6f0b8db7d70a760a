// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func schedule(startPrice, minPrice int64, startTime, endTime uint32) *AuctionRecord {
	return &AuctionRecord{
		StartPrice: big.NewInt(startPrice),
		MinPrice:   big.NewInt(minPrice),
		StartTime:  startTime,
		EndTime:    endTime,
	}
}

func TestPriceEndpoints(t *testing.T) {
	r := schedule(1000, 100, 0, 100)

	tests := []struct {
		now      uint32
		expected int64
	}{
		{0, 1000},
		{50, 550},
		{100, 100},
		{150, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, big.NewInt(tt.expected), r.CurrentPrice(tt.now), "price at block %d", tt.now)
	}
}

func TestPriceBeforeStart(t *testing.T) {
	r := schedule(1000, 100, 50, 150)
	assert.Equal(t, big.NewInt(1000), r.CurrentPrice(0))
	assert.Equal(t, big.NewInt(1000), r.CurrentPrice(50))
}

func TestPriceMonotonicAndBounded(t *testing.T) {
	r := schedule(1000, 100, 0, 100)

	prev := r.CurrentPrice(0)
	for now := uint32(1); now <= 120; now++ {
		price := r.CurrentPrice(now)
		assert.True(t, price.Cmp(prev) <= 0, "price increased at block %d", now)
		assert.True(t, price.Cmp(r.MinPrice) >= 0, "price below floor at block %d", now)
		assert.True(t, price.Cmp(r.StartPrice) <= 0, "price above start at block %d", now)
		prev = price
	}
}

func TestPriceSteepDecay(t *testing.T) {
	// drop per block > 1: ySpan/xSpan branch
	r := schedule(10000, 0, 0, 10)
	assert.Equal(t, big.NewInt(10000), r.CurrentPrice(0))
	assert.Equal(t, big.NewInt(5000), r.CurrentPrice(5))
	assert.Equal(t, big.NewInt(0), r.CurrentPrice(10))
}

func TestPriceShallowDecay(t *testing.T) {
	// drop per block < 1: steps/xPerY branch keeps resolution
	r := schedule(10, 0, 0, 100)
	assert.Equal(t, big.NewInt(10), r.CurrentPrice(0))
	assert.Equal(t, big.NewInt(9), r.CurrentPrice(10))
	assert.Equal(t, big.NewInt(5), r.CurrentPrice(50))
	assert.Equal(t, big.NewInt(0), r.CurrentPrice(100))
}

func TestPriceDegenerateSchedules(t *testing.T) {
	// zero block span: endpoint checks cover every input
	r := schedule(1000, 100, 50, 50)
	assert.Equal(t, big.NewInt(100), r.CurrentPrice(50))
	assert.Equal(t, big.NewInt(100), r.CurrentPrice(51))
	assert.Equal(t, big.NewInt(1000), r.CurrentPrice(49))

	// inverted block span
	r = schedule(1000, 100, 100, 50)
	assert.Equal(t, big.NewInt(100), r.CurrentPrice(75))

	// flat price range
	r = schedule(500, 500, 0, 100)
	assert.Equal(t, big.NewInt(500), r.CurrentPrice(50))

	// inverted price range: floor wins everywhere
	r = schedule(100, 1000, 0, 100)
	assert.Equal(t, big.NewInt(1000), r.CurrentPrice(0))
	assert.Equal(t, big.NewInt(1000), r.CurrentPrice(50))
	assert.Equal(t, big.NewInt(1000), r.CurrentPrice(100))
}

func TestPriceFloorTracksMinPrice(t *testing.T) {
	r := schedule(1000, 100, 0, 100)

	// raising the floor mid-schedule re-aims the line at the new endpoint
	r.MinPrice = big.NewInt(800)
	assert.Equal(t, big.NewInt(900), r.CurrentPrice(50))

	// lowering it steepens the decay, and the floor binds only past the end
	r.MinPrice = big.NewInt(10)
	assert.Equal(t, big.NewInt(550), r.CurrentPrice(50))
	assert.Equal(t, big.NewInt(10), r.CurrentPrice(200))
}

func TestLinearDecreaseLargeValues(t *testing.T) {
	// way beyond 64 bits, u128-scale prices
	yStart, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	yEnd := new(big.Int)
	got := linearDecrease(big.NewInt(0), yStart, big.NewInt(100), yEnd, big.NewInt(50))
	assert.True(t, got.Cmp(yEnd) > 0)
	assert.True(t, got.Cmp(yStart) < 0)
}

func TestSatSub(t *testing.T) {
	assert.Equal(t, big.NewInt(0), satSub(big.NewInt(3), big.NewInt(5)))
	assert.Equal(t, big.NewInt(2), satSub(big.NewInt(5), big.NewInt(3)))
	assert.Equal(t, big.NewInt(0), satSub(big.NewInt(5), big.NewInt(5)))
}
