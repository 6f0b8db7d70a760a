// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dutch-auction/meter"
)

const (
	OP_CREATE        = uint32(1)
	OP_BUY           = uint32(2)
	OP_SET_MIN_PRICE = uint32(3)
	OP_SET_END_TIME  = uint32(4)
	OP_TERMINATE     = uint32(5)

	// Option bits for OP_BUY.
	OPTION_NONE      = uint32(0)
	OPTION_MAX_PRICE = uint32(1) // MaxPrice field is set and must be honored
)

// AuctionBody is the rlp wire form of one auction operation.
// Fields not used by an opcode are carried as zero values.
type AuctionBody struct {
	Opcode       uint32
	Version      uint32
	Option       uint32
	Caller       meter.Address
	AssetToken   meter.Address
	PaymentToken meter.Address
	StartPrice   *big.Int
	MinPrice     *big.Int
	EndTime      uint32
	Amount       *big.Int
	MaxPrice     *big.Int
	Timestamp    uint64
	Nonce        uint64
}

func GetOpName(op uint32) string {
	switch op {
	case OP_CREATE:
		return "Create"
	case OP_BUY:
		return "Buy"
	case OP_SET_MIN_PRICE:
		return "SetMinPrice"
	case OP_SET_END_TIME:
		return "SetEndTime"
	case OP_TERMINATE:
		return "Terminate"
	default:
		return "Unknown"
	}
}

func (ab *AuctionBody) GetOpName(op uint32) string {
	return GetOpName(op)
}

func (ab *AuctionBody) ToString() string {
	return fmt.Sprintf("AuctionBody: Opcode=%v, Version=%v, Option=%v, Caller=%v, AssetToken=%v, PaymentToken=%v, StartPrice=%v, MinPrice=%v, EndTime=%v, Amount=%v, MaxPrice=%v, Timestamp=%v, Nonce=%v",
		ab.Opcode, ab.Version, ab.Option, ab.Caller.String(), ab.AssetToken.AbbrevString(), ab.PaymentToken.AbbrevString(), ab.StartPrice, ab.MinPrice, ab.EndTime, ab.Amount, ab.MaxPrice, ab.Timestamp, ab.Nonce)
}

func (ab *AuctionBody) String() string {
	return ab.ToString()
}

func AuctionEncodeBytes(ab *AuctionBody) []byte {
	auctionBytes, err := rlp.EncodeToBytes(ab)
	if err != nil {
		log.Error("rlp encode failed", "error", err)
		return []byte{}
	}
	return auctionBytes
}

func AuctionDecodeFromBytes(bytes []byte) (*AuctionBody, error) {
	ab := AuctionBody{}
	err := rlp.DecodeBytes(bytes, &ab)
	return &ab, err
}
