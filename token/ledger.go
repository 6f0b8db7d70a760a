// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dutch-auction/meter"
	"github.com/meterio/dutch-auction/state"
)

var (
	balanceKeyPrefix   = []byte("token-balance")
	allowanceKeyPrefix = []byte("token-allowance")
	totalSupplyKey     = meter.Blake2b([]byte("token-total-supply"))
)

// Ledger is a state-backed token implementation. Balances and
// allowances live in the storage of the ledger's own contract address.
type Ledger struct {
	addr  meter.Address
	state *state.State
}

// NewLedger creates a ledger instance for the token at addr.
func NewLedger(addr meter.Address, state *state.State) *Ledger {
	return &Ledger{addr, state}
}

// Address returns the token contract address.
func (l *Ledger) Address() meter.Address {
	return l.addr
}

func balanceKey(account meter.Address) meter.Bytes32 {
	return meter.Blake2b(balanceKeyPrefix, account.Bytes())
}

func allowanceKey(owner, spender meter.Address) meter.Bytes32 {
	return meter.Blake2b(allowanceKeyPrefix, owner.Bytes(), spender.Bytes())
}

func (l *Ledger) getAmount(key meter.Bytes32) (amount *big.Int) {
	l.state.DecodeStorage(l.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			amount = &big.Int{}
			return nil
		}
		return rlp.DecodeBytes(raw, &amount)
	})
	return
}

func (l *Ledger) setAmount(key meter.Bytes32, amount *big.Int) {
	l.state.EncodeStorage(l.addr, key, func() ([]byte, error) {
		if amount.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(amount)
	})
}

// BalanceOf returns the token balance of account.
func (l *Ledger) BalanceOf(account meter.Address) *big.Int {
	return l.getAmount(balanceKey(account))
}

// Allowance returns what spender may still move out of owner's balance.
func (l *Ledger) Allowance(owner, spender meter.Address) *big.Int {
	return l.getAmount(allowanceKey(owner, spender))
}

// TotalSupply returns the amount minted so far.
func (l *Ledger) TotalSupply() *big.Int {
	return l.getAmount(totalSupplyKey)
}

// Mint credits amount to account. Host-level operation, used to fund
// accounts at genesis and in tests.
func (l *Ledger) Mint(account meter.Address, amount *big.Int) error {
	if account.IsZero() {
		return ErrZeroAddress
	}
	key := balanceKey(account)
	l.setAmount(key, new(big.Int).Add(l.getAmount(key), amount))
	l.setAmount(totalSupplyKey, new(big.Int).Add(l.TotalSupply(), amount))
	return nil
}

// Transfer moves amount from the caller's own balance to `to`.
func (l *Ledger) Transfer(caller, to meter.Address, amount *big.Int) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	return l.move(caller, to, amount)
}

// TransferFrom moves amount from `from` to `to`, consuming the
// allowance `from` granted to the caller.
func (l *Ledger) TransferFrom(caller, from, to meter.Address, amount *big.Int) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	akey := allowanceKey(from, caller)
	allowance := l.getAmount(akey)
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := l.move(from, to, amount); err != nil {
		return err
	}
	l.setAmount(akey, new(big.Int).Sub(allowance, amount))
	return nil
}

// Approve grants spender the right to move up to amount of the
// caller's balance. Replaces any previous grant.
func (l *Ledger) Approve(caller, spender meter.Address, amount *big.Int) error {
	if spender.IsZero() {
		return ErrZeroAddress
	}
	l.setAmount(allowanceKey(caller, spender), amount)
	return nil
}

func (l *Ledger) move(from, to meter.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	fromKey := balanceKey(from)
	fromBalance := l.getAmount(fromKey)
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	toKey := balanceKey(to)
	l.setAmount(fromKey, new(big.Int).Sub(fromBalance, amount))
	l.setAmount(toKey, new(big.Int).Add(l.getAmount(toKey), amount))
	return nil
}
