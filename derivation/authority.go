// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derivation

import (
	"bytes"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/fault"
)

// Authority - proof that the holder controls one derived address
//
// only NewAuthority can build a usable value; it is passed to the
// record store and the issuer and then dropped
type Authority struct {
	programId account.Account
	tag       []byte
	owner     account.Account
	bump      uint8
	address   account.Account
}

// NewAuthority - derive the address for (tag, owner) and wrap it
func NewAuthority(programId account.Account, tag []byte, owner account.Account) Authority {
	address, bump := Derive(programId, tag, owner)
	t := make([]byte, len(tag))
	copy(t, tag)
	return Authority{
		programId: programId,
		tag:       t,
		owner:     owner,
		bump:      bump,
		address:   address,
	}
}

// Address - the derived address this authority speaks for
func (a Authority) Address() account.Account { return a.address }

// Owner - the owner identity used in the derivation
func (a Authority) Owner() account.Account { return a.owner }

// Bump - the canonicalization bump
func (a Authority) Bump() uint8 { return a.bump }

// Seeds - the full seed list including the bump
func (a Authority) Seeds() [][]byte {
	return [][]byte{a.tag, a.owner[:], {a.bump}}
}

// Check - confirm the authority was derived under the expected
// program and namespace and still reproduces its address
func (a Authority) Check(programId account.Account, tag []byte) error {
	if a.programId != programId || !bytes.Equal(a.tag, tag) {
		return fault.ErrInvalidAuthority
	}
	address, err := CreateAddress(programId, a.Seeds()...)
	if nil != err || address != a.address {
		return fault.ErrInvalidAuthority
	}
	return nil
}
