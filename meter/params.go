// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

// Constants of the auction chain.
const (
	ClauseGas uint64 = 16000 // flat gas charged per executed script clause
)

// Token identifies the ledger a transfer log belongs to.
const (
	NATIVE byte = 0 // native balance held directly on accounts
	LEDGER byte = 1 // token ledger balance held by a token contract
)

// Well-known module addresses.
var (
	// 0x00006175632d6d6f64756c652d61646472657373
	AuctionModuleAddr = BytesToAddress([]byte("auc-module-address"))
)
