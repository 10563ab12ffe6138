// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes are buffered in a single batch between Begin and
// Commit; reads see the buffered writes through a cache.  Abort
// drops the batch and the cache, so a failed operation leaves the
// database exactly as it was.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ⧺           = concatenation of byte data
// 3. address     = derived storage address (32 bytes)
// 4. account     = owner identity or any funded address (32 bytes)
// 5. asset id    = derived asset address (32 bytes)
// 6. tree        = issuance tree address (32 bytes)
// 7. leaf index  = big endian uint64 (8 bytes)
// 8. count       = big endian uint64 (8 bytes)
//
// Records:
//
//   R ⧺ address              - purchase record
//                              data: discriminator(8) ⧺ owner ⧺ length(u32 LE) ⧺ bitmask
//
// Balances:
//
//   B ⧺ account              - lamport balance
//                              data: count
//
// Issuance:
//
//   H ⧺ owner                - holding: the asset issued to (or bound to) an owner
//                              data: asset id
//   A ⧺ asset id             - minted asset
//                              data: tree ⧺ leaf index ⧺ owner ⧺ CBOR(metadata)
//   L ⧺ tree ⧺ leaf index    - leaf digest
//                              data: SHA3-256 digest
//   N ⧺ tree                 - next leaf index to assign
//                              data: count
//
// Testing:
//   Z ⧺ key                  - testing data
package storage
