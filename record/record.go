// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/fault"
)

// sizes of the persisted header fields
const (
	DiscriminatorLength = 8
	LengthPrefixLength  = 4
	HeaderLength        = DiscriminatorLength + account.AccountLength + LengthPrefixLength
)

// Discriminator - identifies a purchase record in raw storage
var Discriminator = discriminator("account:PurchaseRecord")

func discriminator(name string) [DiscriminatorLength]byte {
	d := [DiscriminatorLength]byte{}
	digest := sha3.Sum256([]byte(name))
	copy(d[:], digest[:DiscriminatorLength])
	return d
}

// Record - one owner's purchase bitmask
type Record struct {
	Owner account.Account `json:"owner"`
	Data  []byte          `json:"data"`
}

// Capacity - number of data bytes, fixed at creation
func (r *Record) Capacity() int {
	return len(r.Data)
}

// Space - total persisted size
func (r *Record) Space() int {
	return HeaderLength + len(r.Data)
}

// Pack - convert a record to its persisted form
func (r *Record) Pack() []byte {
	buffer := make([]byte, HeaderLength, r.Space())
	copy(buffer, Discriminator[:])
	copy(buffer[DiscriminatorLength:], r.Owner[:])
	binary.LittleEndian.PutUint32(buffer[DiscriminatorLength+account.AccountLength:], uint32(len(r.Data)))
	return append(buffer, r.Data...)
}

// Unpack - decode a persisted record
//
// the buffer is copied so the record does not alias storage
func Unpack(buffer []byte) (*Record, error) {
	if len(buffer) < HeaderLength {
		return nil, fault.ErrRecordCorrupt
	}
	if !bytes.Equal(Discriminator[:], buffer[:DiscriminatorLength]) {
		return nil, fault.ErrRecordCorrupt
	}

	n := binary.LittleEndian.Uint32(buffer[DiscriminatorLength+account.AccountLength:])
	if uint64(len(buffer)) != uint64(HeaderLength)+uint64(n) {
		return nil, fault.ErrRecordCorrupt
	}

	r := &Record{
		Data: make([]byte, n),
	}
	copy(r.Owner[:], buffer[DiscriminatorLength:])
	copy(r.Data, buffer[HeaderLength:])
	return r, nil
}

// Capacity - data bytes needed for a collection of size items
func Capacity(collectionSize int) int {
	return (collectionSize + 7) / 8
}

// Space - persisted size for a given capacity
func Space(capacity int) int {
	return HeaderLength + capacity
}
