// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import "errors"

var (
	errAuctionExists      = errors.New("auction already created")
	errAuctionNotCreated  = errors.New("auction not created")
	errAuctionDestroyed   = errors.New("auction terminated")
	errNotAuctionOwner    = errors.New("not the auction owner")
	errMaxPriceExceeded   = errors.New("total price exceeds max price")
	errInsufficientSupply = errors.New("insufficient supply of asset token")
)

// TokenCallError wraps a failure reported by one of the token
// collaborators. The inner cause survives errors.Is/As.
type TokenCallError struct {
	Inner error
}

func (e *TokenCallError) Error() string {
	return "token call failed: " + e.Inner.Error()
}

func (e *TokenCallError) Unwrap() error {
	return e.Inner
}

func wrapTokenCall(err error) error {
	if err == nil {
		return nil
	}
	return &TokenCallError{Inner: err}
}
