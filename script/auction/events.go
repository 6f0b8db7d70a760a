// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dutch-auction/meter"
	setypes "github.com/meterio/dutch-auction/script/types"
	"github.com/meterio/dutch-auction/tx"
	"github.com/pkg/errors"
)

// AssetBoughtEventSig identifies AssetBought events; the second topic
// is the buyer, so listeners can filter per identity.
var AssetBoughtEventSig = meter.Blake2b([]byte("AssetBought(address,uint256,uint256)"))

// AssetBoughtEvent is the decoded form of one purchase notification.
type AssetBoughtEvent struct {
	By     meter.Address
	Price  *big.Int
	Amount *big.Int
}

type assetBoughtData struct {
	Price  *big.Int
	Amount *big.Int
}

func emitAssetBought(env *setypes.ScriptEnv, by meter.Address, price, amount *big.Int) {
	data, err := rlp.EncodeToBytes(&assetBoughtData{Price: price, Amount: amount})
	if err != nil {
		log.Error("rlp encode event failed", "error", err)
		return
	}
	env.AddEvent(meter.AuctionModuleAddr, []meter.Bytes32{
		AssetBoughtEventSig,
		meter.BytesToBytes32(by.Bytes()),
	}, data)
}

// DecodeAssetBought decodes an AssetBought event log.
func DecodeAssetBought(ev *tx.Event) (*AssetBoughtEvent, error) {
	if len(ev.Topics) != 2 || ev.Topics[0] != AssetBoughtEventSig {
		return nil, errors.New("not an AssetBought event")
	}
	var data assetBoughtData
	if err := rlp.DecodeBytes(ev.Data, &data); err != nil {
		return nil, errors.Wrap(err, "decode AssetBought data")
	}
	return &AssetBoughtEvent{
		By:     meter.BytesToAddress(ev.Topics[1].Bytes()),
		Price:  data.Price,
		Amount: data.Amount,
	}, nil
}
