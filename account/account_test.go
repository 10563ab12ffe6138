// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/purchasesd/fault"
)

func TestZeroAccountText(t *testing.T) {
	a := Account{}
	assert.True(t, a.IsZero(), "zero account")
	assert.Equal(t, "11111111111111111111111111111111", a.String(), "zero base58")

	b, err := FromBase58("11111111111111111111111111111111")
	assert.Nil(t, err, "decode zero")
	assert.Equal(t, a, b, "decoded zero")
}

func TestAccountRoundTrip(t *testing.T) {
	a := Account{}
	for i := range a {
		a[i] = byte(i * 7)
	}
	assert.False(t, a.IsZero(), "non-zero account")

	b, err := FromBase58(a.String())
	assert.Nil(t, err, "decode")
	assert.Equal(t, a, b, "base58 round trip")

	type wrapper struct {
		Owner Account `json:"owner"`
	}
	buffer, err := json.Marshal(wrapper{Owner: a})
	assert.Nil(t, err, "json marshal")
	assert.Equal(t, fmt.Sprintf(`{"owner":"%s"}`, a), string(buffer), "json text")

	var w wrapper
	err = json.Unmarshal(buffer, &w)
	assert.Nil(t, err, "json unmarshal")
	assert.Equal(t, a, w.Owner, "json round trip")
}

func TestAccountInvalid(t *testing.T) {
	_, err := FromBase58("0OIl")
	assert.Equal(t, fault.ErrCannotDecodeAccount, err, "invalid base58 characters")

	_, err = FromBase58("3MvykBZzN")
	assert.Equal(t, fault.ErrCannotDecodeAccount, err, "short account")

	_, err = FromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.ErrInvalidLength, err, "short bytes")
}

func TestPrivateKey(t *testing.T) {
	seed := bytes.NewReader(bytes.Repeat([]byte{0x42}, 32))
	p, err := newPrivateKeyFrom(seed)
	assert.Nil(t, err, "generate")

	q, err := PrivateKeyFromBase58(p.String())
	assert.Nil(t, err, "decode private key")
	assert.Equal(t, p.Account(), q.Account(), "same public half")
	assert.False(t, p.Account().IsZero(), "public key set")

	_, err = PrivateKeyFromBase58("abc")
	assert.Equal(t, fault.ErrCannotDecodePrivateKey, err, "short private key")
}
