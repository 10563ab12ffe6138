// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"io"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/purchasesd/fault"
)

// PrivateKey - an ed25519 key whose public half is an owner identity
type PrivateKey struct {
	key ed25519.PrivateKey
}

// NewPrivateKey - generate a fresh key pair
func NewPrivateKey() (*PrivateKey, error) {
	return newPrivateKeyFrom(rand.Reader)
}

func newPrivateKeyFrom(r io.Reader) (*PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(r)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBase58 - decode a base58 64 byte private key (seed ⧺ public)
func PrivateKeyFromBase58(s string) (*PrivateKey, error) {
	buffer, err := base58.Decode(s)
	if nil != err || ed25519.PrivateKeySize != len(buffer) {
		return nil, fault.ErrCannotDecodePrivateKey
	}
	return &PrivateKey{key: ed25519.PrivateKey(buffer)}, nil
}

// Account - the owner identity for this key
func (p *PrivateKey) Account() Account {
	a := Account{}
	copy(a[:], p.key.Public().(ed25519.PublicKey))
	return a
}

// String - base58 text of the full private key
func (p *PrivateKey) String() string {
	return base58.Encode(p.key)
}
