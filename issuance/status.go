// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"github.com/bitmark-inc/purchasesd/account"
)

// Status - result of an issuance lookup, either NotIssued or Issued
type Status interface {
	isStatus()
}

// NotIssued - the owner holds no asset yet
type NotIssued struct{}

// Issued - the owner holds the asset ID
type Issued struct {
	ID account.Account
}

func (NotIssued) isStatus() {}
func (Issued) isStatus()    {}
