// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/purchasesd/fault"
)

// AccountLength - number of bytes in an account or derived address
const AccountLength = 32

// Account - an owner identity or a storage address
//
// both are 32 opaque bytes; owners are normally ed25519 public keys
// while derived addresses are guaranteed not to be
// to get bytes value just use a[:]
type Account [AccountLength]byte

// FromBytes - convert and validate a byte slice
func FromBytes(buffer []byte) (Account, error) {
	a := Account{}
	if AccountLength != len(buffer) {
		return a, fault.ErrInvalidLength
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - decode the text form of an account
func FromBase58(s string) (Account, error) {
	buffer, err := base58.Decode(s)
	if nil != err || AccountLength != len(buffer) {
		return Account{}, fault.ErrCannotDecodeAccount
	}
	return FromBytes(buffer)
}

// IsZero - true if no bytes are set
func (a Account) IsZero() bool {
	return a == Account{}
}

// String - base58 text for use by the fmt package (for %s)
func (a Account) String() string {
	return base58.Encode(a[:])
}

// GoString - for use by the fmt package (for %#v)
func (a Account) GoString() string {
	return "<account:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - convert an account to its base58 JSON form
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert base58 JSON text into an account
func (a *Account) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
