// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package purchases

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/issuance"
	"github.com/bitmark-inc/purchasesd/record"
	"github.com/bitmark-inc/purchasesd/storage"
)

// defaults
const (
	DefaultRecordTag             = "purchases"
	DefaultCollectionSize        = 800
	DefaultMaximumCollectionSize = record.DefaultMaximumCollectionSize
	DefaultTreeDepth             = 14
)

// Configuration - process wide settings resolved once at startup
type Configuration struct {
	RecordProgram   account.Account
	RecordTag       []byte
	IssuanceProgram account.Account
	Tree            account.Account
	TreeDepth       int

	DefaultCollectionSize int
	MaximumCollectionSize int
	Rent                  record.Rent
	Policy                issuance.Policy

	// allow the Fund operation; only for local test ledgers
	AllowFunding bool
}

// copy with unset fields replaced by defaults
func (c Configuration) withDefaults() Configuration {
	if 0 == len(c.RecordTag) {
		c.RecordTag = []byte(DefaultRecordTag)
	}
	if c.MaximumCollectionSize <= 0 {
		c.MaximumCollectionSize = DefaultMaximumCollectionSize
	}
	if 0 == c.DefaultCollectionSize {
		c.DefaultCollectionSize = DefaultCollectionSize
	}
	if 0 == c.TreeDepth {
		c.TreeDepth = DefaultTreeDepth
	}
	if 0 == c.Rent.LamportsPerByteYear {
		c.Rent = record.DefaultRent()
	}
	return c
}

// NewTree - the in-process issuer described by the configuration
//
// storage must already be initialised
func NewTree(c *Configuration) (*issuance.Tree, error) {
	configuration := c.withDefaults()
	parameters := issuance.TreeParameters{
		IssuanceProgram: configuration.IssuanceProgram,
		Address:         configuration.Tree,
		Depth:           configuration.TreeDepth,
		RecordProgram:   configuration.RecordProgram,
		RecordTag:       configuration.RecordTag,
	}
	pools := issuance.TreePools{
		Holdings: storage.Pool.Holdings,
		Holders:  storage.Pool.Holders,
		Assets:   storage.Pool.Assets,
		Leaves:   storage.Pool.Leaves,
		NextLeaf: storage.Pool.TreeNextLeaf,
	}
	return issuance.NewTree(logger.New("tree"), parameters, pools)
}
