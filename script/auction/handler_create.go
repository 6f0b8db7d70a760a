// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"
	"time"

	"github.com/meterio/dutch-auction/meter"
	setypes "github.com/meterio/dutch-auction/script/types"
)

// HandleCreate sets up the auction record. The caller becomes the
// owner, the start time is fixed to the current block. StartPrice,
// MinPrice and EndTime are taken as given, degenerate schedules
// included.
func (a *Auction) HandleCreate(env *setypes.ScriptEnv, ab *AuctionBody) (err error) {
	start := time.Now()
	defer func() {
		a.logger.Debug("create completed", "elapsed", meter.PrettyDuration(time.Since(start)))
	}()

	state := env.GetState()
	if a.IsDestroyed(state) {
		return errAuctionDestroyed
	}
	if a.GetAuctionRecord(state) != nil {
		return errAuctionExists
	}

	record := &AuctionRecord{
		Owner:        ab.Caller,
		AssetToken:   ab.AssetToken,
		PaymentToken: ab.PaymentToken,
		StartPrice:   amountOrZero(ab.StartPrice),
		MinPrice:     amountOrZero(ab.MinPrice),
		StartTime:    env.GetBlockNum(),
		EndTime:      ab.EndTime,
	}
	a.SetAuctionRecord(record, state)

	a.logger.Info("auction created",
		"owner", record.Owner.AbbrevString(),
		"startPrice", record.StartPrice,
		"minPrice", record.MinPrice,
		"startTime", record.StartTime,
		"endTime", record.EndTime)
	return nil
}

func amountOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
