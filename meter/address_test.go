// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x8a88c59bf15451f9deb1d62f7734fece2002668e")
	assert.NoError(t, err)
	assert.Equal(t, "0x8a88c59bf15451f9deb1d62f7734fece2002668e", addr.String())
	assert.Equal(t, "0x8a88...668e", addr.AbbrevString())

	_, err = ParseAddress("8a88c59bf15451f9deb1d62f7734fece2002668e")
	assert.NoError(t, err)

	_, err = ParseAddress("0x8a88")
	assert.Error(t, err)

	_, err = ParseAddress("zz88c59bf15451f9deb1d62f7734fece2002668e")
	assert.Error(t, err)
}

func TestBytesToAddress(t *testing.T) {
	addr := BytesToAddress([]byte("a1"))
	assert.Equal(t, byte('a'), addr[18])
	assert.Equal(t, byte('1'), addr[19])
	assert.False(t, addr.IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestAuctionModuleAddr(t *testing.T) {
	// 18-byte name, left-padded to 20
	assert.Equal(t, "0x00006175632d6d6f64756c652d61646472657373", AuctionModuleAddr.String())
}

func TestBlake2b(t *testing.T) {
	h1 := Blake2b([]byte("hello"))
	h2 := Blake2b([]byte("hello"))
	h3 := Blake2b([]byte("world"))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.False(t, h1.IsZero())

	// split input hashes the same as the concatenation
	assert.Equal(t, Blake2b([]byte("helloworld")), Blake2b([]byte("hello"), []byte("world")))
}

func TestParseBytes32(t *testing.T) {
	s := "0x0000000000000000000000000000000000000000000000000000000000001234"
	b, err := ParseBytes32(s)
	assert.NoError(t, err)
	assert.Equal(t, s, b.String())

	_, err = ParseBytes32("0x1234")
	assert.Error(t, err)
}
