// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dutch-auction/meter"
	"github.com/meterio/dutch-auction/state"
)

// storage keys under meter.AuctionModuleAddr
var (
	auctionRecordKey    = meter.Blake2b([]byte("auction-record-key"))
	auctionDestroyedKey = meter.Blake2b([]byte("auction-destroyed-key"))
)

// AuctionRecord is the persistent storage of one dutch auction.
// Owner, AssetToken, PaymentToken and StartTime never change after
// creation; MinPrice and EndTime are owner-mutable. No relation
// between StartPrice/MinPrice or StartTime/EndTime is enforced.
type AuctionRecord struct {
	Owner        meter.Address
	AssetToken   meter.Address
	PaymentToken meter.Address
	StartPrice   *big.Int
	MinPrice     *big.Int
	StartTime    uint32
	EndTime      uint32
}

// CurrentPrice evaluates the price schedule at block `now` and floors
// the result at the current MinPrice. The extra floor matters when
// MinPrice was raised after the schedule was fixed.
func (r *AuctionRecord) CurrentPrice(now uint32) *big.Int {
	price := linearDecrease(
		new(big.Int).SetUint64(uint64(r.StartTime)),
		r.StartPrice,
		new(big.Int).SetUint64(uint64(r.EndTime)),
		r.MinPrice,
		new(big.Int).SetUint64(uint64(now)),
	)
	if price.Cmp(r.MinPrice) < 0 {
		return new(big.Int).Set(r.MinPrice)
	}
	return price
}

// GetAuctionRecord loads the auction record, nil if never created or
// already destroyed.
func (a *Auction) GetAuctionRecord(state *state.State) (result *AuctionRecord) {
	state.DecodeStorage(meter.AuctionModuleAddr, auctionRecordKey, func(raw []byte) error {
		if len(raw) == 0 {
			result = nil
			return nil
		}
		var record AuctionRecord
		if err := rlp.DecodeBytes(raw, &record); err != nil {
			log.Warn("error during decoding auction record", "err", err)
			return err
		}
		result = &record
		return nil
	})
	return
}

// SetAuctionRecord persists the auction record.
func (a *Auction) SetAuctionRecord(record *AuctionRecord, state *state.State) {
	state.EncodeStorage(meter.AuctionModuleAddr, auctionRecordKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(record)
	})
}

// DeleteAuctionRecord removes the record from storage.
func (a *Auction) DeleteAuctionRecord(state *state.State) {
	state.EncodeStorage(meter.AuctionModuleAddr, auctionRecordKey, func() ([]byte, error) {
		return nil, nil
	})
}

// IsDestroyed reports whether the auction was terminated. Termination
// is irreversible, the tombstone outlives the record.
func (a *Auction) IsDestroyed(state *state.State) (destroyed bool) {
	state.DecodeStorage(meter.AuctionModuleAddr, auctionDestroyedKey, func(raw []byte) error {
		destroyed = len(raw) > 0
		return nil
	})
	return
}

func (a *Auction) markDestroyed(state *state.State) {
	state.EncodeStorage(meter.AuctionModuleAddr, auctionDestroyedKey, func() ([]byte, error) {
		return rlp.EncodeToBytes(true)
	})
}
