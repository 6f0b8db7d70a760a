// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter defines methods to read kv.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// Putter defines methods to write kv.
type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// GetPutter defines methods to read/write kv.
type GetPutter interface {
	Getter
	Putter
}

// Batch batch of ops.
type Batch interface {
	Putter
	Len() int
	Write() error
}

// Batcher is implemented by stores that can group writes into one
// atomic batch.
type Batcher interface {
	NewBatch() Batch
}

// NotFounder is implemented by stores that can tell a missing key
// apart from a real failure.
type NotFounder interface {
	IsNotFound(err error) bool
}

// Store defines full functional kv.
type Store interface {
	GetPutter
	Batcher
	NotFounder
	Close() error
}
