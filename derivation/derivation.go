// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derivation

import (
	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/fault"
)

// limits on the seed list
const (
	MaximumSeeds      = 16
	MaximumSeedLength = 32
)

var addressMarker = []byte("ProgramDerivedAddress")

// CreateAddress - single derivation attempt with the bump already
// appended to the seeds
//
// fails if the digest lands on the curve
func CreateAddress(programId account.Account, seeds ...[]byte) (account.Account, error) {
	if len(seeds) > MaximumSeeds {
		return account.Account{}, fault.ErrInvalidLength
	}

	h := sha3.New256()
	for _, s := range seeds {
		if len(s) > MaximumSeedLength {
			return account.Account{}, fault.ErrInvalidLength
		}
		h.Write(s)
	}
	h.Write(programId[:])
	h.Write(addressMarker)

	a := account.Account{}
	copy(a[:], h.Sum(nil))

	if IsOnCurve(a) {
		return account.Account{}, fault.ErrInvalidAddressDerivation
	}
	return a, nil
}

// Find - search for the first valid bump from 255 downwards
//
// the seeds must already satisfy the length limits
func Find(programId account.Account, seeds ...[]byte) (account.Account, uint8) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := 255; bump >= 0; bump -= 1 {
		withBump[len(seeds)] = []byte{byte(bump)}
		a, err := CreateAddress(programId, withBump...)
		if nil == err {
			return a, uint8(bump)
		}
		if fault.ErrInvalidAddressDerivation != err {
			logger.Panicf("derivation: invalid seeds: %s", err)
		}
	}
	// every one of 256 digests being a curve point is not a practical outcome
	logger.Panic("derivation: no valid bump")
	return account.Account{}, 0
}

// Derive - the storage address of an owner within a namespace
func Derive(programId account.Account, tag []byte, owner account.Account) (account.Account, uint8) {
	return Find(programId, tag, owner[:])
}

// Verify - recompute the derivation and compare with a supplied address
//
// a mismatch is never corrected
func Verify(programId account.Account, tag []byte, owner account.Account, supplied account.Account) (uint8, error) {
	expected, bump := Derive(programId, tag, owner)
	if expected != supplied {
		return 0, fault.ErrInvalidAddressDerivation
	}
	return bump, nil
}

// IsOnCurve - true if the bytes decode as an Ed25519 point
func IsOnCurve(a account.Account) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return nil == err
}
