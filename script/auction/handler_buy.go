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

// HandleBuy purchases `Amount` asset tokens at the current price.
//
// The buyer must have approved the auction module for at least
// price*amount payment tokens beforehand, and the owner must hold a
// standing asset allowance to the module covering the sale. With
// OPTION_MAX_PRICE set, the call fails once the total exceeds
// MaxPrice. Both transfer legs revert together on any error.
func (a *Auction) HandleBuy(env *setypes.ScriptEnv, ab *AuctionBody) (err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			a.logger.Info("buy failed", "buyer", ab.Caller.AbbrevString(), "err", err)
		}
		a.logger.Debug("buy completed", "elapsed", meter.PrettyDuration(time.Since(start)))
	}()

	state := env.GetState()
	record, err := a.liveRecord(state)
	if err != nil {
		return err
	}

	assetToken, err := a.tokens.FindToken(record.AssetToken)
	if err != nil {
		return wrapTokenCall(err)
	}
	paymentToken, err := a.tokens.FindToken(record.PaymentToken)
	if err != nil {
		return wrapTokenCall(err)
	}

	amount := amountOrZero(ab.Amount)
	available := assetToken.BalanceOf(record.Owner)
	if amount.Cmp(big.NewInt(1)) < 0 || available.Cmp(amount) < 0 {
		return errInsufficientSupply
	}

	price := record.CurrentPrice(env.GetBlockNum())
	total := new(big.Int).Mul(price, amount)
	if ab.Option&OPTION_MAX_PRICE != 0 {
		if total.Cmp(amountOrZero(ab.MaxPrice)) > 0 {
			return errMaxPriceExceeded
		}
	}

	buyer := ab.Caller

	// payment first: buyer -> owner, spending the buyer's allowance
	// to the module
	if err = paymentToken.TransferFrom(meter.AuctionModuleAddr, buyer, record.Owner, total); err != nil {
		return wrapTokenCall(err)
	}
	env.AddTransfer(buyer, record.Owner, total, meter.LEDGER)

	// then the asset: owner -> buyer, spending the owner's standing
	// allowance to the module
	if err = assetToken.TransferFrom(meter.AuctionModuleAddr, record.Owner, buyer, amount); err != nil {
		return wrapTokenCall(err)
	}
	env.AddTransfer(record.Owner, buyer, amount, meter.LEDGER)

	emitAssetBought(env, buyer, total, amount)

	a.logger.Info("asset bought",
		"buyer", buyer.AbbrevString(),
		"amount", amount,
		"price", total,
		"block", env.GetBlockNum())
	return nil
}
