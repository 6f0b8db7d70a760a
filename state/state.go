// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dutch-auction/kv"
	"github.com/meterio/dutch-auction/meter"
	"github.com/pkg/errors"
)

var (
	accountPrefix = []byte("a/")
	storagePrefix = []byte("s/")
)

// State manages accounts and their keyed storage on top of a kv store.
// All mutations are journaled, so any range of changes can be thrown
// away with NewCheckpoint/RevertTo before they reach the kv.
type State struct {
	kv       kv.GetPutter
	accounts map[meter.Address]*cachedAccount
	journal  []journalEntry
	err      error
}

type cachedAccount struct {
	balance *big.Int
	storage map[meter.Bytes32][]byte
	deleted bool
	dirty   bool
}

type journalEntry struct {
	revert func(*State)
}

// New creates a state object bound to the given kv.
func New(kv kv.GetPutter) (*State, error) {
	return &State{
		kv:       kv,
		accounts: make(map[meter.Address]*cachedAccount),
	}, nil
}

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns first occurred error.
func (s *State) Err() error {
	return s.err
}

func accountKey(addr meter.Address) []byte {
	return append(append([]byte(nil), accountPrefix...), addr.Bytes()...)
}

func storageKey(addr meter.Address, key meter.Bytes32) []byte {
	k := append(append([]byte(nil), storagePrefix...), addr.Bytes()...)
	return append(k, key.Bytes()...)
}

type persistedAccount struct {
	Balance *big.Int
}

// isNotFound treats every error as a missing key unless the kv can
// tell the difference.
func (s *State) isNotFound(err error) bool {
	if nf, ok := s.kv.(kv.NotFounder); ok {
		return nf.IsNotFound(err)
	}
	return true
}

func (s *State) getAccount(addr meter.Address) *cachedAccount {
	if acc, ok := s.accounts[addr]; ok {
		return acc
	}
	acc := &cachedAccount{
		balance: new(big.Int),
		storage: make(map[meter.Bytes32][]byte),
	}
	data, err := s.kv.Get(accountKey(addr))
	if err == nil {
		var stored persistedAccount
		if err := rlp.DecodeBytes(data, &stored); err != nil {
			s.setError(errors.Wrapf(err, "decode account %v", addr))
		} else {
			acc.balance = stored.Balance
		}
	} else if !s.isNotFound(err) {
		s.setError(errors.Wrapf(err, "load account %v", addr))
	}
	s.accounts[addr] = acc
	return acc
}

// Exists returns whether an account exists, either with balance or storage.
func (s *State) Exists(addr meter.Address) bool {
	acc := s.getAccount(addr)
	if acc.deleted {
		return false
	}
	if acc.balance.Sign() != 0 || len(acc.storage) > 0 {
		return true
	}
	has, err := s.kv.Has(accountKey(addr))
	if err != nil {
		s.setError(errors.Wrapf(err, "check account %v", addr))
		return false
	}
	return has
}

// Delete deletes an account and all of its storage.
func (s *State) Delete(addr meter.Address) {
	acc := s.getAccount(addr)
	prevBalance := new(big.Int).Set(acc.balance)
	prevDeleted := acc.deleted
	s.journal = append(s.journal, journalEntry{func(s *State) {
		acc.balance = prevBalance
		acc.deleted = prevDeleted
	}})
	acc.balance = new(big.Int)
	acc.deleted = true
	acc.dirty = true
}

// GetBalance returns native balance of the account.
func (s *State) GetBalance(addr meter.Address) *big.Int {
	acc := s.getAccount(addr)
	if acc.deleted {
		return new(big.Int)
	}
	return new(big.Int).Set(acc.balance)
}

// SetBalance sets native balance of the account.
func (s *State) SetBalance(addr meter.Address, balance *big.Int) {
	acc := s.getAccount(addr)
	prev := acc.balance
	prevDeleted := acc.deleted
	s.journal = append(s.journal, journalEntry{func(s *State) {
		acc.balance = prev
		acc.deleted = prevDeleted
	}})
	acc.balance = new(big.Int).Set(balance)
	acc.deleted = false
	acc.dirty = true
}

// AddBalance adds amount to the account's native balance.
func (s *State) AddBalance(addr meter.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	s.SetBalance(addr, new(big.Int).Add(s.GetBalance(addr), amount))
}

// SubBalance subtracts amount from the account's native balance.
// Returns false and leaves the balance untouched on underflow.
func (s *State) SubBalance(addr meter.Address, amount *big.Int) bool {
	if amount.Sign() == 0 {
		return true
	}
	balance := s.GetBalance(addr)
	if balance.Cmp(amount) < 0 {
		return false
	}
	s.SetBalance(addr, new(big.Int).Sub(balance, amount))
	return true
}

// GetRawStorage returns storage value in rlp raw for given key.
func (s *State) GetRawStorage(addr meter.Address, key meter.Bytes32) rlp.RawValue {
	acc := s.getAccount(addr)
	if acc.deleted {
		return nil
	}
	if raw, ok := acc.storage[key]; ok {
		return raw
	}
	raw, err := s.kv.Get(storageKey(addr, key))
	if err != nil {
		if !s.isNotFound(err) {
			s.setError(errors.Wrapf(err, "load storage %v %v", addr, key))
		}
		raw = nil
	}
	acc.storage[key] = raw
	return raw
}

// SetRawStorage sets storage value in rlp raw.
func (s *State) SetRawStorage(addr meter.Address, key meter.Bytes32, raw rlp.RawValue) {
	acc := s.getAccount(addr)
	prev, hadPrev := acc.storage[key]
	prevDeleted := acc.deleted
	s.journal = append(s.journal, journalEntry{func(s *State) {
		if hadPrev {
			acc.storage[key] = prev
		} else {
			delete(acc.storage, key)
		}
		acc.deleted = prevDeleted
	}})
	acc.storage[key] = raw
	acc.deleted = false
	acc.dirty = true
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr meter.Address, key meter.Bytes32, enc func() ([]byte, error)) {
	raw, err := enc()
	if err != nil {
		s.setError(errors.Wrapf(err, "encode storage %v %v", addr, key))
		return
	}
	s.SetRawStorage(addr, key, raw)
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr meter.Address, key meter.Bytes32, dec func([]byte) error) {
	raw := s.GetRawStorage(addr, key)
	if err := dec(raw); err != nil {
		s.setError(errors.Wrapf(err, "decode storage %v %v", addr, key))
	}
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return len(s.journal)
}

// RevertTo reverts state to given revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision > len(s.journal) {
		panic("state: invalid revision")
	}
	for i := len(s.journal) - 1; i >= revision; i-- {
		s.journal[i].revert(s)
	}
	s.journal = s.journal[:revision]
}

// Commit flushes all cached changes into the kv and resets the
// journal. Writes go through one batch when the kv supports it, so a
// commit hits the disk all-or-nothing.
func (s *State) Commit() error {
	if s.err != nil {
		return s.err
	}

	var w kv.Putter = s.kv
	var batch kv.Batch
	if b, ok := s.kv.(kv.Batcher); ok {
		batch = b.NewBatch()
		w = batch
	}

	for addr, acc := range s.accounts {
		if !acc.dirty {
			continue
		}
		if acc.deleted {
			if err := w.Delete(accountKey(addr)); err != nil {
				return errors.Wrapf(err, "delete account %v", addr)
			}
			for key := range acc.storage {
				if err := w.Delete(storageKey(addr, key)); err != nil {
					return errors.Wrapf(err, "delete storage %v %v", addr, key)
				}
			}
		} else {
			data, err := rlp.EncodeToBytes(&persistedAccount{Balance: acc.balance})
			if err != nil {
				return errors.Wrapf(err, "encode account %v", addr)
			}
			if err := w.Put(accountKey(addr), data); err != nil {
				return errors.Wrapf(err, "put account %v", addr)
			}
			for key, raw := range acc.storage {
				if len(raw) == 0 {
					if err := w.Delete(storageKey(addr, key)); err != nil {
						return errors.Wrapf(err, "delete storage %v %v", addr, key)
					}
					continue
				}
				if err := w.Put(storageKey(addr, key), raw); err != nil {
					return errors.Wrapf(err, "put storage %v %v", addr, key)
				}
			}
		}
	}

	if batch != nil {
		if err := batch.Write(); err != nil {
			return errors.Wrap(err, "write commit batch")
		}
	}
	for _, acc := range s.accounts {
		acc.dirty = false
	}
	s.journal = s.journal[:0]
	return nil
}
