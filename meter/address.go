// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address address of account.
type Address [20]byte

// String implements the stringer interface
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// AbbrevString returns the abbreviated string of address
func (a Address) AbbrevString() string {
	s := hex.EncodeToString(a[:])
	return "0x" + s[:4] + "..." + s[len(s)-4:]
}

// Bytes returns byte slice form of address.
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero returns if address is all zero bytes
func (a Address) IsZero() bool {
	return a == Address{}
}

// ParseAddress convert string presented address into Address type.
func ParseAddress(s string) (Address, error) {
	if len(s) == 40+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return Address{}, fmt.Errorf("address expected prefix 0x")
		}
		s = s[2:]
	}
	if len(s) != 40 {
		return Address{}, fmt.Errorf("address expected 40 hex chars")
	}
	var addr Address
	if _, err := hex.Decode(addr[:], []byte(s)); err != nil {
		return Address{}, err
	}
	return addr, nil
}

// MustParseAddress convert string presented address into Address type, panic on error.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// BytesToAddress converts bytes slice into address.
// If b is larger than address legth, b will be cropped (from the left).
// If b is smaller than address length, b will be extended (from the left).
func BytesToAddress(b []byte) Address {
	var addr Address
	if len(b) > len(addr) {
		b = b[len(b)-len(addr):]
	}
	copy(addr[len(addr)-len(b):], b)
	return addr
}
