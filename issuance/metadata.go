// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/fault"
)

// limits on metadata fields
const (
	MaximumNameLength    = 32
	MaximumSymbolLength  = 10
	MaximumURILength     = 200
	MaximumBasisPoints   = 10000
	MaximumCreators      = 5
	FullShare            = 100
	DefaultEditionNonce  = 1
	TokenProgramVersion1 = 1
)

// TokenStandard - structural kind of the minted asset
type TokenStandard uint8

// token standards
const (
	NonFungible TokenStandard = iota
	FungibleAsset
	Fungible
	NonFungibleEdition
)

func (t TokenStandard) String() string {
	switch t {
	case NonFungible:
		return "NonFungible"
	case FungibleAsset:
		return "FungibleAsset"
	case Fungible:
		return "Fungible"
	case NonFungibleEdition:
		return "NonFungibleEdition"
	default:
		return "*unknown*"
	}
}

// MarshalText - token standard as its name
func (t TokenStandard) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText - token standard from its name
func (t *TokenStandard) UnmarshalText(s []byte) error {
	for _, v := range []TokenStandard{NonFungible, FungibleAsset, Fungible, NonFungibleEdition} {
		if v.String() == string(s) {
			*t = v
			return nil
		}
	}
	return fault.ErrInvalidCount
}

// Creator - a royalty recipient
type Creator struct {
	Address  account.Account `cbor:"1,keyasint" json:"address"`
	Verified bool            `cbor:"2,keyasint" json:"verified"`
	Share    uint8           `cbor:"3,keyasint" json:"share"`
}

// Collection - optional grouping of the asset
type Collection struct {
	Key      account.Account `cbor:"1,keyasint" json:"key"`
	Verified bool            `cbor:"2,keyasint" json:"verified"`
}

// Metadata - descriptive data minted with an asset
type Metadata struct {
	Name                 string        `cbor:"1,keyasint" json:"name"`
	Symbol               string        `cbor:"2,keyasint" json:"symbol"`
	URI                  string        `cbor:"3,keyasint" json:"uri"`
	SellerFeeBasisPoints uint16        `cbor:"4,keyasint" json:"sellerFeeBasisPoints"`
	PrimarySaleHappened  bool          `cbor:"5,keyasint" json:"primarySaleHappened"`
	IsMutable            bool          `cbor:"6,keyasint" json:"isMutable"`
	EditionNonce         *uint8        `cbor:"7,keyasint,omitempty" json:"editionNonce,omitempty"`
	TokenStandard        TokenStandard `cbor:"8,keyasint" json:"tokenStandard"`
	Collection           *Collection   `cbor:"9,keyasint,omitempty" json:"collection,omitempty"`
	TokenProgramVersion  uint8         `cbor:"10,keyasint" json:"tokenProgramVersion"`
	Creators             []Creator     `cbor:"11,keyasint" json:"creators"`
}

// Policy - configured values for every minted asset
type Policy struct {
	Name                 string `gluamapper:"name" json:"name"`
	Symbol               string `gluamapper:"symbol" json:"symbol"`
	URI                  string `gluamapper:"uri" json:"uri"`
	SellerFeeBasisPoints uint16 `gluamapper:"seller_fee_basis_points" json:"sellerFeeBasisPoints"`
}

// Metadata - build the metadata for owner's asset
//
// owner is the single verified creator with the full share
func (p Policy) Metadata(owner account.Account, collection *Collection) *Metadata {
	nonce := uint8(DefaultEditionNonce)
	m := &Metadata{
		Name:                 p.Name,
		Symbol:               p.Symbol,
		URI:                  p.URI,
		SellerFeeBasisPoints: p.SellerFeeBasisPoints,
		PrimarySaleHappened:  false,
		IsMutable:            true,
		EditionNonce:         &nonce,
		TokenStandard:        NonFungible,
		TokenProgramVersion:  TokenProgramVersion1,
		Creators: []Creator{
			{
				Address:  owner,
				Verified: true,
				Share:    FullShare,
			},
		},
	}
	if nil != collection {
		c := *collection
		m.Collection = &c
	}
	return m
}

// Validate - structural checks only; content is not interpreted
func (m *Metadata) Validate() error {
	if "" == m.Name || "" == m.Symbol || "" == m.URI {
		return fault.ErrMissingMetadataField
	}
	if len(m.Name) > MaximumNameLength || len(m.Symbol) > MaximumSymbolLength || len(m.URI) > MaximumURILength {
		return fault.ErrInvalidLength
	}
	if m.SellerFeeBasisPoints > MaximumBasisPoints {
		return fault.ErrInvalidCount
	}
	if 0 == len(m.Creators) {
		return fault.ErrMissingMetadataField
	}
	if len(m.Creators) > MaximumCreators {
		return fault.ErrInvalidCount
	}
	total := 0
	for _, c := range m.Creators {
		total += int(c.Share)
	}
	if FullShare != total {
		return fault.ErrInvalidCount
	}
	if nil != m.Collection && m.Collection.Key.IsZero() {
		return fault.ErrMissingMetadataField
	}
	return nil
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if nil != err {
		panic(err)
	}
}

// Pack - deterministic CBOR form
func (m *Metadata) Pack() ([]byte, error) {
	return encMode.Marshal(m)
}

// UnpackMetadata - decode CBOR metadata
func UnpackMetadata(buffer []byte) (*Metadata, error) {
	m := &Metadata{}
	err := cbor.Unmarshal(buffer, m)
	if nil != err {
		return nil, fault.ErrRecordCorrupt
	}
	return m, nil
}
