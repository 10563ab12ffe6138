// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/fault"
)

// Access - database access through the open batch
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Put([]byte, []byte)
}

type accessData struct {
	sync.Mutex
	inUse    bool
	readOnly bool
	db       *leveldb.DB
	batch    *leveldb.Batch
	cache    Cache
}

func newDA(db *leveldb.DB, readOnly bool, cache Cache) *accessData {
	return &accessData{
		inUse:    false,
		readOnly: readOnly,
		db:       db,
		batch:    new(leveldb.Batch),
		cache:    cache,
	}
}

func (d *accessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.readOnly {
		return fault.ErrReadOnly
	}
	if d.inUse {
		return fault.ErrTransactionInUse
	}

	d.inUse = true
	return nil
}

func (d *accessData) Put(key []byte, value []byte) {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		logger.Panicf("storage: put outside transaction: %x", key)
	}
	v := make([]byte, len(value))
	copy(v, value)
	d.cache.Set(dbPut, string(key), v)
	d.batch.Put(key, v)
}

func (d *accessData) Delete(key []byte) {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		logger.Panicf("storage: delete outside transaction: %x", key)
	}
	d.cache.Set(dbDelete, string(key), nil)
	d.batch.Delete(key)
}

func (d *accessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return fault.ErrTransactionNotInUse
	}

	err := d.db.Write(d.batch, nil)
	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
	return err
}

func (d *accessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}

func (d *accessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

// Get - pending value if the transaction touched the key, else the database
//
// returns leveldb.ErrNotFound for missing or deleted keys
func (d *accessData) Get(key []byte) ([]byte, error) {
	value, op, found := d.cache.Get(string(key))
	if found {
		if dbDelete == op {
			return nil, leveldb.ErrNotFound
		}
		result := make([]byte, len(value))
		copy(result, value)
		return result, nil
	}
	return d.db.Get(key, nil)
}

func (d *accessData) Has(key []byte) (bool, error) {
	_, op, found := d.cache.Get(string(key))
	if found {
		return dbPut == op, nil
	}
	return d.db.Has(key, nil)
}
