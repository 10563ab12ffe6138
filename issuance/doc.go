// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package issuance - at most one ownership asset per owner
//
// the Coordinator asks an Issuer whether the owner already holds an
// asset and mints one only when it does not; the asset id is derived
// from the issuing tree and the leaf index it was assigned so any
// reader can recompute it
//
// Tree is the in-process Issuer: a fixed depth merkle tree of asset
// leaves kept in the ledger database
package issuance
