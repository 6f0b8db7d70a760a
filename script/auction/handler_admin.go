// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/meterio/dutch-auction/meter"
	setypes "github.com/meterio/dutch-auction/script/types"
)

// HandleSetMinPrice replaces the price floor, unconditionally. The
// schedule is not revalidated against the new value; CurrentPrice
// clamps at read time instead.
func (a *Auction) HandleSetMinPrice(env *setypes.ScriptEnv, ab *AuctionBody) error {
	state := env.GetState()
	record, err := a.liveRecord(state)
	if err != nil {
		return err
	}
	if err := a.checkOwner(record, ab.Caller); err != nil {
		return err
	}

	record.MinPrice = amountOrZero(ab.MinPrice)
	a.SetAuctionRecord(record, state)

	a.logger.Info("min price updated", "minPrice", record.MinPrice)
	return nil
}

// HandleSetEndTime replaces the end of the decay period,
// unconditionally, even to a block before StartTime.
func (a *Auction) HandleSetEndTime(env *setypes.ScriptEnv, ab *AuctionBody) error {
	state := env.GetState()
	record, err := a.liveRecord(state)
	if err != nil {
		return err
	}
	if err := a.checkOwner(record, ab.Caller); err != nil {
		return err
	}

	record.EndTime = ab.EndTime
	a.SetAuctionRecord(record, state)

	a.logger.Info("end time updated", "endTime", record.EndTime)
	return nil
}

// HandleTerminate destroys the auction: the record is deleted, any
// residual native balance at the module address is swept to the owner
// and every later opcode fails on the tombstone.
func (a *Auction) HandleTerminate(env *setypes.ScriptEnv, ab *AuctionBody) error {
	state := env.GetState()
	record, err := a.liveRecord(state)
	if err != nil {
		return err
	}
	if err := a.checkOwner(record, ab.Caller); err != nil {
		return err
	}

	residual := state.GetBalance(meter.AuctionModuleAddr)
	if residual.Sign() > 0 {
		state.SetBalance(meter.AuctionModuleAddr, &big.Int{})
		state.AddBalance(record.Owner, residual)
		env.AddTransfer(meter.AuctionModuleAddr, record.Owner, residual, meter.NATIVE)
	}

	a.DeleteAuctionRecord(state)
	a.markDestroyed(state)

	a.logger.Info("auction terminated", "owner", record.Owner.AbbrevString(), "residual", residual)
	return nil
}
