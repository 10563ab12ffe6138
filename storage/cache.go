// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// Cache - pending writes of the open transaction
type Cache interface {
	Get(string) ([]byte, dbOperation, bool)
	Set(dbOperation, string, []byte)
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

// entries must live until commit or abort, so nothing expires
func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get - return the pending value and operation for a key
//
// found is false if the key was not touched by the transaction
func (c *dbCache) Get(key string) ([]byte, dbOperation, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, dbPut, false
	}
	data := obj.(cacheData)
	return data.value, data.op, true
}

func (c *dbCache) Set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.NoExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
