// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"encoding/binary"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/derivation"
)

// AssetTag - namespace for asset id derivation
var AssetTag = []byte("asset")

// Issuer - the authority that mints ownership assets
type Issuer interface {
	// Lookup - the asset currently held by owner
	Lookup(owner account.Account) (Status, error)

	// Mint - issue one asset to owner, authorised by the record
	// address authority; returns the tree and assigned leaf index
	Mint(authority derivation.Authority, owner account.Account, metadata *Metadata) (account.Account, uint64, error)

	// Bind - record that owner holds an externally issued asset
	Bind(owner account.Account, id account.Account) error
}

// AssetID - the reproducible id of the asset at leafIndex of tree
func AssetID(issuanceProgram account.Account, tree account.Account, leafIndex uint64) account.Account {
	leaf := make([]byte, 8)
	binary.LittleEndian.PutUint64(leaf, leafIndex)
	id, _ := derivation.Find(issuanceProgram, AssetTag, tree[:], leaf)
	return id
}
