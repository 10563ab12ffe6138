// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/derivation"
	"github.com/bitmark-inc/purchasesd/fault"
	"github.com/bitmark-inc/purchasesd/merkle"
	"github.com/bitmark-inc/purchasesd/storage"
)

// Asset - a minted or bound asset as read back from the ledger
type Asset struct {
	ID        account.Account `json:"id"`
	Owner     account.Account `json:"owner"`
	Tree      account.Account `json:"tree"`
	LeafIndex uint64          `json:"leafIndex"`
	Leaf      merkle.Digest   `json:"leaf"`
	Metadata  *Metadata       `json:"metadata"`
}

// TreeParameters - identity and shape of an issuance tree
type TreeParameters struct {
	IssuanceProgram account.Account
	Address         account.Account
	Depth           int

	// authorities presented to Mint must be derived in this namespace
	RecordProgram account.Account
	RecordTag     []byte
}

// TreePools - storage used by a tree
type TreePools struct {
	Holdings storage.Handle // owner → asset id
	Holders  storage.Handle // asset id → owner
	Assets   storage.Handle
	Leaves   storage.Handle
	NextLeaf storage.Handle
}

// Tree - in-process issuer keeping its leaves in the ledger
//
// all writes land in the caller's open transaction
type Tree struct {
	log        *logger.L
	parameters TreeParameters
	pools      TreePools
}

// asset record: tree ⧺ leaf index (8 byte big endian) ⧺ owner ⧺ CBOR metadata
const assetHeaderLength = 2*account.AccountLength + 8

// NewTree - create a tree issuer
func NewTree(log *logger.L, parameters TreeParameters, pools TreePools) (*Tree, error) {
	if parameters.Depth <= 0 || parameters.Depth > merkle.MaximumDepth {
		return nil, fault.ErrInvalidCount
	}
	return &Tree{
		log:        log,
		parameters: parameters,
		pools:      pools,
	}, nil
}

// Address - the tree account
func (t *Tree) Address() account.Account {
	return t.parameters.Address
}

// Capacity - number of leaves the tree can hold
func (t *Tree) Capacity() uint64 {
	return uint64(1) << uint(t.parameters.Depth)
}

// Size - number of leaves assigned so far
func (t *Tree) Size() uint64 {
	n, _ := t.pools.NextLeaf.GetN(t.parameters.Address[:])
	return n
}

// Lookup - implements Issuer
func (t *Tree) Lookup(owner account.Account) (Status, error) {
	buffer := t.pools.Holdings.Get(owner[:])
	if nil == buffer {
		return NotIssued{}, nil
	}
	id, err := account.FromBytes(buffer)
	if nil != err {
		return nil, fault.ErrRecordCorrupt
	}
	return Issued{ID: id}, nil
}

// Mint - implements Issuer
func (t *Tree) Mint(authority derivation.Authority, owner account.Account, metadata *Metadata) (account.Account, uint64, error) {
	tree := t.parameters.Address

	err := authority.Check(t.parameters.RecordProgram, t.parameters.RecordTag)
	if nil != err {
		return tree, 0, err
	}
	if authority.Owner() != owner {
		return tree, 0, fault.ErrInvalidAuthority
	}
	if t.pools.Holdings.Has(owner[:]) {
		return tree, 0, fault.ErrAlreadyIssued
	}

	err = metadata.Validate()
	if nil != err {
		return tree, 0, err
	}
	packed, err := metadata.Pack()
	if nil != err {
		return tree, 0, err
	}

	leafIndex := t.Size()
	if leafIndex >= t.Capacity() {
		t.log.Errorf("tree: %s is full at: %d leaves", tree, leafIndex)
		return tree, 0, fault.ErrInvalidCount
	}

	id := AssetID(t.parameters.IssuanceProgram, tree, leafIndex)

	record := make([]byte, 0, assetHeaderLength+len(packed))
	record = append(record, tree[:]...)
	record = appendUint64(record, leafIndex)
	record = append(record, owner[:]...)
	record = append(record, packed...)

	leaf := leafDigest(id, authority.Address(), record)

	t.pools.Leaves.Put(leafKey(tree, leafIndex), leaf[:])
	t.pools.NextLeaf.PutN(tree[:], leafIndex+1)
	t.pools.Assets.Put(id[:], record)
	t.pools.Holdings.Put(owner[:], id[:])
	t.pools.Holders.Put(id[:], owner[:])

	t.log.Debugf("tree: %s leaf: %d digest: %s", tree, leafIndex, leaf)

	return tree, leafIndex, nil
}

// Bind - implements Issuer
//
// an asset id is held by at most one owner
func (t *Tree) Bind(owner account.Account, id account.Account) error {
	if t.pools.Holdings.Has(owner[:]) {
		return fault.ErrAlreadyIssued
	}
	if holder := t.pools.Holders.Get(id[:]); nil != holder {
		if !bytes.Equal(holder, owner[:]) {
			return fault.ErrAssetMismatch
		}
	}
	buffer := t.pools.Assets.Get(id[:])
	if nil != buffer {
		asset, err := unpackAsset(id, buffer)
		if nil != err {
			return err
		}
		if asset.Owner != owner {
			return fault.ErrAssetMismatch
		}
	}
	t.pools.Holdings.Put(owner[:], id[:])
	t.pools.Holders.Put(id[:], owner[:])
	return nil
}

// Asset - read back an asset minted by this tree
func (t *Tree) Asset(id account.Account) (*Asset, error) {
	buffer := t.pools.Assets.Get(id[:])
	if nil == buffer {
		return nil, fault.ErrAssetNotFound
	}
	asset, err := unpackAsset(id, buffer)
	if nil != err {
		return nil, err
	}
	leaf := t.pools.Leaves.Get(leafKey(asset.Tree, asset.LeafIndex))
	if nil != leaf {
		err = merkle.DigestFromBytes(&asset.Leaf, leaf)
		if nil != err {
			return nil, fault.ErrRecordCorrupt
		}
	}
	return asset, nil
}

// Root - current root of the tree
func (t *Tree) Root() (merkle.Digest, error) {
	leaves, err := t.leaves()
	if nil != err {
		return merkle.Digest{}, err
	}
	return merkle.Root(leaves, t.parameters.Depth)
}

// Proof - sibling path for a leaf, verifiable against Root
func (t *Tree) Proof(leafIndex uint64) ([]merkle.Digest, error) {
	leaves, err := t.leaves()
	if nil != err {
		return nil, err
	}
	return merkle.Proof(leaves, leafIndex, t.parameters.Depth)
}

func (t *Tree) leaves() ([]merkle.Digest, error) {
	tree := t.parameters.Address
	n := t.Size()
	leaves := make([]merkle.Digest, n)
	for i := uint64(0); i < n; i += 1 {
		buffer := t.pools.Leaves.Get(leafKey(tree, i))
		if nil == buffer {
			logger.Panicf("tree: %s missing leaf: %d of %d", tree, i, n)
		}
		err := merkle.DigestFromBytes(&leaves[i], buffer)
		if nil != err {
			return nil, fault.ErrRecordCorrupt
		}
	}
	return leaves, nil
}

func unpackAsset(id account.Account, buffer []byte) (*Asset, error) {
	if len(buffer) < assetHeaderLength {
		return nil, fault.ErrRecordCorrupt
	}
	asset := &Asset{
		ID: id,
	}
	n := copy(asset.Tree[:], buffer)
	asset.LeafIndex = binary.BigEndian.Uint64(buffer[n:])
	n += 8
	copy(asset.Owner[:], buffer[n:])

	metadata, err := UnpackMetadata(buffer[assetHeaderLength:])
	if nil != err {
		return nil, err
	}
	asset.Metadata = metadata
	return asset, nil
}

func leafKey(tree account.Account, leafIndex uint64) []byte {
	key := make([]byte, 0, account.AccountLength+8)
	key = append(key, tree[:]...)
	return appendUint64(key, leafIndex)
}

func leafDigest(id account.Account, address account.Account, record []byte) merkle.Digest {
	buffer := make([]byte, 0, 2*account.AccountLength+len(record))
	buffer = append(buffer, id[:]...)
	buffer = append(buffer, address[:]...)
	buffer = append(buffer, record...)
	return merkle.NewDigest(buffer)
}

func appendUint64(buffer []byte, n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return append(buffer, b...)
}
