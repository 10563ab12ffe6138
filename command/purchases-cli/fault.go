// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/purchasesd/fault"
)

// common errors - keep in alphabetic order
const (
	ErrAmbiguousItems    = fault.InvalidError("only one of items or item may be given")
	ErrMissingAccount    = fault.InvalidError("account is required")
	ErrMissingAmount     = fault.InvalidError("amount is required")
	ErrMissingAssetId    = fault.InvalidError("asset id is required")
	ErrMissingCollection = fault.InvalidError("collection is required when verified")
	ErrMissingItems      = fault.InvalidError("items or item is required")
	ErrMissingOwner      = fault.InvalidError("owner is required")
	ErrNegativeItem      = fault.InvalidError("item number is negative")
)
