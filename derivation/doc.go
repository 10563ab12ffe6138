// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package derivation - deterministic storage addresses
//
// An address is computed from a program identity and a list of seeds
// (normally a namespace tag and an owner identity):
//
//   SHA3-256(seed₁ ⧺ … ⧺ seedₙ ⧺ bump ⧺ programId ⧺ "ProgramDerivedAddress")
//
// The bump is searched downwards from 255 until the digest is not the
// compressed encoding of an Ed25519 point, so no private key can exist
// for a derived address.  Addresses are never stored; every access
// recomputes them and compares against whatever the caller supplied.
package derivation
