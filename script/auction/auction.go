// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"errors"
	"log/slog"
	"math/big"

	"github.com/meterio/dutch-auction/meter"
	setypes "github.com/meterio/dutch-auction/script/types"
	"github.com/meterio/dutch-auction/state"
	"github.com/meterio/dutch-auction/token"
	"github.com/meterio/dutch-auction/tx"
	"github.com/meterio/dutch-auction/xenv"
)

var (
	AuctionGlobInst *Auction
	log             = slog.Default().With("pkg", "auction")
)

// Auction is the dutch auction engine. It owns no state of its own;
// everything lives in the state passed per invocation. The token
// finder resolves the two collaborator addresses bound in the record.
type Auction struct {
	tokens token.Finder
	logger *slog.Logger
}

func GetAuctionGlobInst() *Auction {
	return AuctionGlobInst
}

func SetAuctionGlobInst(inst *Auction) {
	AuctionGlobInst = inst
}

func NewAuction(tokens token.Finder) *Auction {
	auction := &Auction{
		tokens: tokens,
		logger: slog.Default().With("pkg", "auction"),
	}
	SetAuctionGlobInst(auction)
	return auction
}

func (a *Auction) Start() error {
	a.logger.Info("auction module started")
	return nil
}

// PrepareAuctionHandler returns the entry point the host invokes per
// script clause. Any error reverts every state change of the clause,
// so payment collection and asset disbursement are atomic together.
func (a *Auction) PrepareAuctionHandler() (AuctionHandler func(data []byte, to *meter.Address, txCtx *xenv.TransactionContext, blockCtx *xenv.BlockContext, gas uint64, state *state.State) (ret []byte, leftOverGas uint64, err error, transfers tx.Transfers, events tx.Events)) {

	AuctionHandler = func(data []byte, to *meter.Address, txCtx *xenv.TransactionContext, blockCtx *xenv.BlockContext, gas uint64, state *state.State) (ret []byte, leftOverGas uint64, err error, transfers tx.Transfers, events tx.Events) {

		transfers = make(tx.Transfers, 0)
		events = make(tx.Events, 0)
		ab, err := AuctionDecodeFromBytes(data)
		if err != nil {
			a.logger.Error("decode script message failed", "error", err)
			return nil, gas, err, transfers, events
		}

		if gas < meter.ClauseGas {
			leftOverGas = 0
		} else {
			leftOverGas = gas - meter.ClauseGas
		}

		if ab.Caller != txCtx.Origin {
			return nil, leftOverGas, errors.New("caller address is not the same from transaction"), transfers, events
		}

		env := setypes.NewScriptEnv(state, blockCtx, txCtx, to)

		a.logger.Debug("received auction", "body", ab.ToString())
		a.logger.Info("entering auction handler " + GetOpName(ab.Opcode))

		checkpoint := state.NewCheckpoint()
		switch ab.Opcode {
		case OP_CREATE:
			err = a.HandleCreate(env, ab)
		case OP_BUY:
			err = a.HandleBuy(env, ab)
		case OP_SET_MIN_PRICE:
			err = a.HandleSetMinPrice(env, ab)
		case OP_SET_END_TIME:
			err = a.HandleSetEndTime(env, ab)
		case OP_TERMINATE:
			err = a.HandleTerminate(env, ab)
		default:
			a.logger.Error("unknown Opcode", "Opcode", ab.Opcode)
			return nil, leftOverGas, errors.New("unknown auction opcode"), transfers, events
		}
		if err != nil {
			state.RevertTo(checkpoint)
			env.SetReturnData([]byte(err.Error()))
			return env.GetReturnData(), leftOverGas, err, transfers, events
		}

		transfers = env.GetTransfers()
		events = env.GetEvents()
		a.logger.Debug("leaving auction handler", "op", GetOpName(ab.Opcode))
		return env.GetReturnData(), leftOverGas, err, transfers, events
	}
	return
}

func (a *Auction) checkOwner(record *AuctionRecord, caller meter.Address) error {
	if caller != record.Owner {
		return errNotAuctionOwner
	}
	return nil
}

// liveRecord loads the record and maps the two absent states onto
// their terminal errors.
func (a *Auction) liveRecord(state *state.State) (*AuctionRecord, error) {
	if a.IsDestroyed(state) {
		return nil, errAuctionDestroyed
	}
	record := a.GetAuctionRecord(state)
	if record == nil {
		return nil, errAuctionNotCreated
	}
	return record, nil
}

// ---------------- read-only queries ----------------

// EndTime returns the block after which the price no longer decreases.
// The auction does not end there, the asset stays purchasable at MinPrice.
func (a *Auction) EndTime(state *state.State) (uint32, error) {
	record, err := a.liveRecord(state)
	if err != nil {
		return 0, err
	}
	return record.EndTime, nil
}

// StartBlock returns the block at which the auction started.
func (a *Auction) StartBlock(state *state.State) (uint32, error) {
	record, err := a.liveRecord(state)
	if err != nil {
		return 0, err
	}
	return record.StartTime, nil
}

// Price returns what a single asset token costs at block `now`.
func (a *Auction) Price(state *state.State, now uint32) (*big.Int, error) {
	record, err := a.liveRecord(state)
	if err != nil {
		return nil, err
	}
	return record.CurrentPrice(now), nil
}

// MinPrice returns the current price floor.
func (a *Auction) MinPrice(state *state.State) (*big.Int, error) {
	record, err := a.liveRecord(state)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(record.MinPrice), nil
}

// AvailableAsset returns the amount of asset tokens still for sale:
// the owner's live balance, since the auction sells out of the owner's
// holding on a standing allowance and never takes custody.
func (a *Auction) AvailableAsset(state *state.State) (*big.Int, error) {
	record, err := a.liveRecord(state)
	if err != nil {
		return nil, err
	}
	assetToken, err := a.tokens.FindToken(record.AssetToken)
	if err != nil {
		return nil, wrapTokenCall(err)
	}
	return assetToken.BalanceOf(record.Owner), nil
}
