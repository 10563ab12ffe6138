// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/bitmask"
	"github.com/bitmark-inc/purchasesd/issuance"
)

// required base58 account
func requiredAccount(s string, missing error) (account.Account, error) {
	if "" == s {
		return account.Account{}, missing
	}
	return account.FromBase58(s)
}

// optional base58 account, nil if blank
func optionalAccount(s string) (*account.Account, error) {
	if "" == s {
		return nil, nil
	}
	a, err := account.FromBase58(s)
	if nil != err {
		return nil, err
	}
	return &a, nil
}

// optional collection, verified only applies when a key is given
func optionalCollection(s string, verified bool) (*issuance.Collection, error) {
	key, err := optionalAccount(s)
	if nil != err {
		return nil, err
	}
	if nil == key {
		if verified {
			return nil, ErrMissingCollection
		}
		return nil, nil
	}
	return &issuance.Collection{
		Key:      *key,
		Verified: verified,
	}, nil
}

// optional collection size, nil if zero so the server default applies
func optionalSize(n int) *int {
	if 0 == n {
		return nil
	}
	return &n
}

// build a bitmask either from hex bytes or from a list of item numbers
func makeItems(hexItems string, numbers []int) ([]byte, error) {
	switch {
	case "" != hexItems && 0 != len(numbers):
		return nil, ErrAmbiguousItems
	case "" != hexItems:
		return hex.DecodeString(hexItems)
	case 0 == len(numbers):
		return nil, ErrMissingItems
	}

	highest := 0
	for _, n := range numbers {
		if n < 0 {
			return nil, ErrNegativeItem
		}
		if n > highest {
			highest = n
		}
	}

	items := make([]byte, highest/8+1)
	for _, n := range numbers {
		bitmask.Set(items, uint64(n))
	}
	return items, nil
}
