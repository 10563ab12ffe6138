// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - per owner purchase records stored at derived addresses
//
// persisted layout (little endian):
//
//   [ 8 byte discriminator ]
//   [ 32 byte owner        ]
//   [ 4 byte data length   ]
//   [ data: capacity bytes ]
//
// capacity is ceil(collection size / 8) and never changes after the
// record is created; storing the record costs its rent exemption
// minimum balance which moves from the funder to the record address
package record
