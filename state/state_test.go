// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dutch-auction/lvldb"
	"github.com/meterio/dutch-auction/meter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T) (*State, *lvldb.LevelDB) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := New(kv)
	require.NoError(t, err)
	return st, kv
}

func TestBalance(t *testing.T) {
	st, _ := newState(t)
	acc := meter.BytesToAddress([]byte("a1"))

	tests := []struct {
		ret      interface{}
		expected interface{}
	}{
		{st.GetBalance(acc), &big.Int{}},
		{func() bool { st.AddBalance(acc, big.NewInt(10)); return true }(), true},
		{st.GetBalance(acc), big.NewInt(10)},
		{st.SubBalance(acc, big.NewInt(5)), true},
		{st.SubBalance(acc, big.NewInt(6)), false},
		{st.GetBalance(acc), big.NewInt(5)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.ret)
	}
	assert.Nil(t, st.Err())
}

func TestStorageCodec(t *testing.T) {
	st, _ := newState(t)
	addr := meter.BytesToAddress([]byte("contract"))
	key := meter.Blake2b([]byte("slot"))

	// empty slot decodes as empty raw
	st.DecodeStorage(addr, key, func(raw []byte) error {
		assert.Len(t, raw, 0)
		return nil
	})

	st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(big.NewInt(12345))
	})

	var got *big.Int
	st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &got)
	})
	assert.Equal(t, big.NewInt(12345), got)
	assert.Nil(t, st.Err())
}

func TestCheckpointRevert(t *testing.T) {
	st, _ := newState(t)
	acc := meter.BytesToAddress([]byte("a1"))
	addr := meter.BytesToAddress([]byte("contract"))
	key := meter.Blake2b([]byte("slot"))

	st.SetBalance(acc, big.NewInt(100))
	st.SetRawStorage(addr, key, []byte{0x01})

	rev := st.NewCheckpoint()
	st.SetBalance(acc, big.NewInt(999))
	st.SetRawStorage(addr, key, []byte{0x02})
	st.Delete(acc)

	st.RevertTo(rev)
	assert.Equal(t, big.NewInt(100), st.GetBalance(acc))
	assert.Equal(t, rlp.RawValue([]byte{0x01}), st.GetRawStorage(addr, key))
	assert.True(t, st.Exists(acc))
}

func TestNestedCheckpoints(t *testing.T) {
	st, _ := newState(t)
	acc := meter.BytesToAddress([]byte("a1"))

	st.SetBalance(acc, big.NewInt(1))
	outer := st.NewCheckpoint()
	st.SetBalance(acc, big.NewInt(2))
	inner := st.NewCheckpoint()
	st.SetBalance(acc, big.NewInt(3))

	st.RevertTo(inner)
	assert.Equal(t, big.NewInt(2), st.GetBalance(acc))
	st.RevertTo(outer)
	assert.Equal(t, big.NewInt(1), st.GetBalance(acc))
}

func TestCommitPersists(t *testing.T) {
	st, kv := newState(t)
	acc := meter.BytesToAddress([]byte("a1"))
	addr := meter.BytesToAddress([]byte("contract"))
	key := meter.Blake2b([]byte("slot"))

	st.SetBalance(acc, big.NewInt(77))
	st.SetRawStorage(addr, key, []byte{0xaa})
	require.NoError(t, st.Commit())

	// a fresh state over the same kv sees the committed values
	st2, err := New(kv)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(77), st2.GetBalance(acc))
	assert.Equal(t, rlp.RawValue([]byte{0xaa}), st2.GetRawStorage(addr, key))
}

func TestDelete(t *testing.T) {
	st, kv := newState(t)
	acc := meter.BytesToAddress([]byte("a1"))

	st.SetBalance(acc, big.NewInt(5))
	require.NoError(t, st.Commit())

	st.Delete(acc)
	assert.False(t, st.Exists(acc))
	assert.Equal(t, &big.Int{}, st.GetBalance(acc))
	require.NoError(t, st.Commit())

	st2, err := New(kv)
	require.NoError(t, err)
	assert.Equal(t, &big.Int{}, st2.GetBalance(acc))
}
