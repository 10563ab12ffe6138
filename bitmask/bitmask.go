// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bitmask - purchased item membership stored in a fixed
// capacity byte buffer
package bitmask

// Apply - overwrite data from offset zero with items
//
// only min(len(data), len(items)) bytes are copied: excess items are
// dropped and the tail of data is left as it was; never fails
//
// returns the number of bytes applied
func Apply(data []byte, items []byte) int {
	n := len(data)
	if len(items) < n {
		n = len(items)
	}
	copy(data[:n], items[:n])
	return n
}

// IsSet - true if bit item is set; items past the end are never set
func IsSet(data []byte, item uint64) bool {
	i := item / 8
	if i >= uint64(len(data)) {
		return false
	}
	return 0 != data[i]&(1<<(item%8))
}

// Set - set bit item, returns false if it is beyond capacity
func Set(data []byte, item uint64) bool {
	i := item / 8
	if i >= uint64(len(data)) {
		return false
	}
	data[i] |= 1 << (item % 8)
	return true
}

// Count - number of set bits
func Count(data []byte) int {
	n := 0
	for _, b := range data {
		for ; 0 != b; b &= b - 1 {
			n += 1
		}
	}
	return n
}

// Items - the indices of all set bits in ascending order
func Items(data []byte) []uint64 {
	items := make([]uint64, 0, Count(data))
	for i, b := range data {
		for bit := uint64(0); bit < 8; bit += 1 {
			if 0 != b&(1<<bit) {
				items = append(items, uint64(i)*8+bit)
			}
		}
	}
	return items
}
