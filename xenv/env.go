// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"fmt"

	"github.com/meterio/dutch-auction/meter"
)

// BlockContext block context. Number is the time axis every schedule
// in the system is evaluated against.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// TransactionContext transaction context. Origin is the externally
// signed identity of the caller.
type TransactionContext struct {
	ID     meter.Bytes32
	Origin meter.Address
	Nonce  uint64
}

func (ctx *TransactionContext) String() string {
	return fmt.Sprintf("txCtx{ID:%s Origin:%s Nonce:%d}", ctx.ID.AbbrevString(), ctx.Origin.String(), ctx.Nonce)
}
