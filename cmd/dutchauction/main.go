// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"math/big"
	"math/rand"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/meterio/dutch-auction/lvldb"
	"github.com/meterio/dutch-auction/meter"
	"github.com/meterio/dutch-auction/script/auction"
	"github.com/meterio/dutch-auction/state"
	"github.com/meterio/dutch-auction/token"
	"github.com/meterio/dutch-auction/xenv"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string

	ownerAddr = meter.MustParseAddress("0x8a88c59bf15451f9deb1d62f7734fece2002668e")
	buyerAddr = meter.MustParseAddress("0x0205c2d862ca051010698b69b54278cbaf945c0b")
	assetAddr = meter.BytesToAddress([]byte("asset-token-address"))
	payAddr   = meter.BytesToAddress([]byte("payment-token-address"))
)

func fullVersion() string {
	if version == "" {
		return "dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "dutchauction",
		Usage:     "dutch auction engine in solo mode",
		Copyright: "2020 The Meter.io developers",
		Flags: []cli.Flag{
			cli.Uint64Flag{Name: "start-price", Value: 1000, Usage: "price per asset token at the start block"},
			cli.Uint64Flag{Name: "min-price", Value: 100, Usage: "price floor after the end block"},
			cli.UintFlag{Name: "duration", Value: 100, Usage: "number of blocks the price decays over"},
			cli.Uint64Flag{Name: "supply", Value: 50, Usage: "asset tokens offered by the owner"},
			cli.UintFlag{Name: "buy-interval", Value: 10, Usage: "blocks between simulated purchases"},
			cli.IntFlag{Name: "verbosity", Value: int(slog.LevelInfo), Usage: "log verbosity (slog level)"},
		},
		Action: soloAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(lvl int) {
	w := os.Stderr
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slog.Level(lvl),
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(w.Fd()),
	})))
}

func soloAction(ctx *cli.Context) error {
	initLogger(ctx.Int("verbosity"))

	kv, err := lvldb.NewMem()
	if err != nil {
		return err
	}
	defer kv.Close()

	st, err := state.NewCreator(kv).NewState()
	if err != nil {
		return err
	}

	supply := new(big.Int).SetUint64(ctx.Uint64("supply"))
	startPrice := new(big.Int).SetUint64(ctx.Uint64("start-price"))
	minPrice := new(big.Int).SetUint64(ctx.Uint64("min-price"))
	duration := uint32(ctx.Uint("duration"))
	buyInterval := uint32(ctx.Uint("buy-interval"))

	// fund the two ledgers and grant the module its allowances
	registry := token.NewRegistry()
	assetLedger := token.NewLedger(assetAddr, st)
	payLedger := token.NewLedger(payAddr, st)
	registry.Register(assetLedger)
	registry.Register(payLedger)

	budget := new(big.Int).Mul(startPrice, supply)
	if err := assetLedger.Mint(ownerAddr, supply); err != nil {
		return err
	}
	if err := payLedger.Mint(buyerAddr, budget); err != nil {
		return err
	}
	if err := assetLedger.Approve(ownerAddr, meter.AuctionModuleAddr, supply); err != nil {
		return err
	}
	if err := payLedger.Approve(buyerAddr, meter.AuctionModuleAddr, budget); err != nil {
		return err
	}

	a := auction.NewAuction(registry)
	if err := a.Start(); err != nil {
		return err
	}
	handler := a.PrepareAuctionHandler()

	invoke := func(num uint32, origin meter.Address, body *auction.AuctionBody) error {
		blockCtx := &xenv.BlockContext{Number: num, Time: uint64(time.Now().Unix())}
		txCtx := &xenv.TransactionContext{Origin: origin, Nonce: rand.Uint64()}
		_, _, err, _, events := handler(auction.AuctionEncodeBytes(body), &meter.AuctionModuleAddr, txCtx, blockCtx, meter.ClauseGas*2, st)
		if err != nil {
			return err
		}
		for _, ev := range events {
			if bought, err := auction.DecodeAssetBought(ev); err == nil {
				slog.Info("purchase recorded", "by", bought.By.AbbrevString(), "price", bought.Price, "amount", bought.Amount)
			}
		}
		return st.Commit()
	}

	if err := invoke(0, ownerAddr, &auction.AuctionBody{
		Opcode:       auction.OP_CREATE,
		Caller:       ownerAddr,
		AssetToken:   assetAddr,
		PaymentToken: payAddr,
		StartPrice:   startPrice,
		MinPrice:     minPrice,
		EndTime:      duration,
		Amount:       &big.Int{},
		MaxPrice:     &big.Int{},
		Timestamp:    uint64(time.Now().Unix()),
	}); err != nil {
		return err
	}

	for num := uint32(0); num <= duration; num += buyInterval {
		price, err := a.Price(st, num)
		if err != nil {
			return err
		}
		available, err := a.AvailableAsset(st)
		if err != nil {
			return err
		}
		slog.Info("block", "num", num, "price", price, "available", available)

		if available.Sign() == 0 {
			slog.Info("sold out")
			break
		}
		if err := invoke(num, buyerAddr, &auction.AuctionBody{
			Opcode:     auction.OP_BUY,
			Caller:     buyerAddr,
			Amount:     big.NewInt(1),
			StartPrice: &big.Int{},
			MinPrice:   &big.Int{},
			MaxPrice:   &big.Int{},
			Timestamp:  uint64(time.Now().Unix()),
		}); err != nil {
			slog.Warn("buy failed", "block", num, "err", err)
		}
	}

	if err := invoke(duration+1, ownerAddr, &auction.AuctionBody{
		Opcode:     auction.OP_TERMINATE,
		Caller:     ownerAddr,
		StartPrice: &big.Int{},
		MinPrice:   &big.Int{},
		Amount:     &big.Int{},
		MaxPrice:   &big.Int{},
		Timestamp:  uint64(time.Now().Unix()),
	}); err != nil {
		return err
	}
	slog.Info("auction terminated, residual payment balance", "owner", payLedger.BalanceOf(ownerAddr))
	return nil
}
