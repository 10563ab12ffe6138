// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

// AccountStorageOverhead - bytes charged for every stored account on top of its data
const AccountStorageOverhead = 128

// Rent - storage cost policy
type Rent struct {
	LamportsPerByteYear uint64  `gluamapper:"lamports_per_byte_year" json:"lamportsPerByteYear"`
	ExemptionThreshold  float64 `gluamapper:"exemption_threshold" json:"exemptionThreshold"`
}

// DefaultRent - 3480 lamports per byte year, two years to exemption
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: 3480,
		ExemptionThreshold:  2.0,
	}
}

// MinimumBalance - lamports that make an account of space bytes rent exempt
func (r Rent) MinimumBalance(space int) uint64 {
	bytes := uint64(AccountStorageOverhead + space)
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}
