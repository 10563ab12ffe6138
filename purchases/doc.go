// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package purchases - the public ledger operations
//
// every mutating operation is serialised by the ledger lock and runs
// inside one storage transaction; on any error the transaction is
// aborted so nothing it wrote becomes visible
//
// Purchase order of work:
//   validate collection size
//   verify any caller supplied address
//   check the payer can fund a new record
//   look up the owner's asset, minting if absent
//   create the record if absent
//   apply the items
//   commit
package purchases
