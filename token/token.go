// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"errors"
	"math/big"

	"github.com/meterio/dutch-auction/meter"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient token balance")
	ErrInsufficientAllowance = errors.New("insufficient token allowance")
	ErrZeroAddress           = errors.New("zero address not allowed")
	ErrTokenNotFound         = errors.New("no token at address")
)

// Token is the fungible-token surface the auction dispatches through.
// The caller argument carries the identity a transfer is executed as;
// inside a script invocation it is either the tx origin or a module
// address acting on a standing allowance.
type Token interface {
	Address() meter.Address
	BalanceOf(account meter.Address) *big.Int
	Allowance(owner, spender meter.Address) *big.Int
	Transfer(caller, to meter.Address, amount *big.Int) error
	TransferFrom(caller, from, to meter.Address, amount *big.Int) error
	Approve(caller, spender meter.Address, amount *big.Int) error
}

// Finder resolves a token contract address to its implementation.
// It is the capability handle the auction holds instead of the
// collaborator itself.
type Finder interface {
	FindToken(addr meter.Address) (Token, error)
}

// Registry is a Finder over the token ledgers the host has registered.
type Registry struct {
	tokens map[meter.Address]Token
}

func NewRegistry() *Registry {
	return &Registry{tokens: make(map[meter.Address]Token)}
}

func (r *Registry) Register(t Token) {
	r.tokens[t.Address()] = t
}

// FindToken implements Finder.
func (r *Registry) FindToken(addr meter.Address) (Token, error) {
	t, ok := r.tokens[addr]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return t, nil
}
