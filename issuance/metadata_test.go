// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/fault"
	"github.com/bitmark-inc/purchasesd/issuance"
)

func TestPolicyMetadata(t *testing.T) {
	owner := account.Account{0x40}
	m := policy.Metadata(owner, nil)

	assert.Nil(t, m.Validate(), "valid")
	assert.Nil(t, m.Collection, "no collection")
	assert.Equal(t, uint8(issuance.DefaultEditionNonce), *m.EditionNonce, "nonce")
	assert.Equal(t, uint8(issuance.TokenProgramVersion1), m.TokenProgramVersion, "version")
	assert.False(t, m.PrimarySaleHappened, "primary sale")

	c := &issuance.Collection{Key: account.Account{0x41}}
	m = policy.Metadata(owner, c)
	c.Verified = true
	assert.False(t, m.Collection.Verified, "collection copied")
}

func TestMetadataValidate(t *testing.T) {
	owner := account.Account{0x42}
	cases := []struct {
		name   string
		modify func(*issuance.Metadata)
		err    error
	}{
		{"no name", func(m *issuance.Metadata) { m.Name = "" }, fault.ErrMissingMetadataField},
		{"no uri", func(m *issuance.Metadata) { m.URI = "" }, fault.ErrMissingMetadataField},
		{"long symbol", func(m *issuance.Metadata) { m.Symbol = strings.Repeat("S", 11) }, fault.ErrInvalidLength},
		{"fee", func(m *issuance.Metadata) { m.SellerFeeBasisPoints = 10001 }, fault.ErrInvalidCount},
		{"no creators", func(m *issuance.Metadata) { m.Creators = nil }, fault.ErrMissingMetadataField},
		{"shares", func(m *issuance.Metadata) { m.Creators[0].Share = 99 }, fault.ErrInvalidCount},
		{"collection key", func(m *issuance.Metadata) { m.Collection = &issuance.Collection{} }, fault.ErrMissingMetadataField},
	}

	for _, c := range cases {
		m := policy.Metadata(owner, nil)
		c.modify(m)
		assert.Equal(t, c.err, m.Validate(), c.name)
	}
}

func TestMetadataPackIsDeterministic(t *testing.T) {
	m := policy.Metadata(account.Account{0x43}, &issuance.Collection{Key: account.Account{0x44}, Verified: true})
	b1, err := m.Pack()
	assert.Nil(t, err, "pack")
	b2, _ := m.Pack()
	assert.Equal(t, b1, b2, "deterministic")

	u, err := issuance.UnpackMetadata(b1)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, m, u, "round trip")

	_, err = issuance.UnpackMetadata([]byte{0xff, 0x00})
	assert.Equal(t, fault.ErrRecordCorrupt, err, "garbage")
}
