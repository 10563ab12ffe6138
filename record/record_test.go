// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/derivation"
	"github.com/bitmark-inc/purchasesd/fault"
	"github.com/bitmark-inc/purchasesd/fixtures"
	"github.com/bitmark-inc/purchasesd/record"
	"github.com/bitmark-inc/purchasesd/storage"
)

var (
	programId = account.Account{0x50, 0x55, 0x52}
	tag       = []byte("purchases")
)

func TestMain(m *testing.M) {
	if err := fixtures.SetupTestDatabase(); nil != err {
		panic(err)
	}
	rc := m.Run()
	fixtures.TeardownTestDatabase()
	os.Exit(rc)
}

func newStore() *record.Store {
	parameters := record.Parameters{
		ProgramId:             programId,
		Tag:                   tag,
		MaximumCollectionSize: record.DefaultMaximumCollectionSize,
		Rent:                  record.DefaultRent(),
	}
	return record.NewStore(logger.New("record"), parameters, storage.Pool.Records, storage.Pool.Balances)
}

func newOwner(b byte) account.Account {
	return account.Account{0xee, b, 0x01}
}

// run f inside a transaction and always abort so tests stay independent
func inTransaction(t *testing.T, f func()) {
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin")
	defer trx.Abort()
	f()
}

func TestPackLayout(t *testing.T) {
	r := &record.Record{
		Owner: newOwner(1),
		Data:  []byte{1, 2, 3, 4, 5},
	}
	buffer := r.Pack()

	assert.Equal(t, 8+32+4+5, len(buffer), "packed length")
	assert.Equal(t, record.Discriminator[:], buffer[:8], "discriminator")
	assert.Equal(t, r.Owner[:], buffer[8:40], "owner")
	assert.Equal(t, []byte{5, 0, 0, 0}, buffer[40:44], "length prefix")
	assert.Equal(t, r.Data, buffer[44:], "data")

	u, err := record.Unpack(buffer)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, r, u, "round trip")
}

func TestUnpackCorrupt(t *testing.T) {
	good := (&record.Record{Data: make([]byte, 3)}).Pack()

	_, err := record.Unpack(good[:20])
	assert.Equal(t, fault.ErrRecordCorrupt, err, "short header")

	_, err = record.Unpack(good[:len(good)-1])
	assert.Equal(t, fault.ErrRecordCorrupt, err, "short data")

	bad := append([]byte{}, good...)
	bad[0] ^= 0xff
	_, err = record.Unpack(bad)
	assert.Equal(t, fault.ErrRecordCorrupt, err, "discriminator")
}

func TestRentMinimumBalance(t *testing.T) {
	rent := record.DefaultRent()
	assert.Equal(t, uint64(890880), rent.MinimumBalance(0), "empty account")
	assert.Equal(t, uint64((128+49)*3480*2), rent.MinimumBalance(49), "49 bytes")
}

func TestRequirement(t *testing.T) {
	s := newStore()

	capacity, lamports, err := s.Requirement(40)
	assert.Nil(t, err, "size 40")
	assert.Equal(t, 5, capacity, "capacity for 40 items")
	assert.Equal(t, 49, record.Space(capacity), "space for 40 items")
	assert.Equal(t, record.DefaultRent().MinimumBalance(49), lamports, "lamports for 40 items")

	capacity, _, err = s.Requirement(800)
	assert.Nil(t, err, "size 800")
	assert.Equal(t, 100, capacity, "capacity for 800 items")

	capacity, _, err = s.Requirement(2000)
	assert.Nil(t, err, "maximum size")
	assert.Equal(t, 250, capacity, "capacity for 2000 items")

	for _, size := range []int{-1, 0, 2001, 1 << 30} {
		_, _, err = s.Requirement(size)
		assert.Equal(t, fault.ErrInvalidCollectionSize, err, "size %d", size)
	}
}

func TestCreateFundingThreshold(t *testing.T) {
	s := newStore()
	owner := newOwner(2)
	funder := newOwner(3)

	for size := 1; size <= record.DefaultMaximumCollectionSize; size += 37 {
		_, required, _ := s.Requirement(size)

		inTransaction(t, func() {
			_, err := s.Credit(funder, required-1)
			assert.Nil(t, err, "credit")

			_, _, err = s.Create(s.Authority(owner), size, funder)
			assert.Equal(t, fault.ErrInsufficientFunding, err, "one short for %d", size)
			assert.False(t, s.Exists(s.Address(owner)), "nothing created for %d", size)

			_, err = s.Credit(funder, 1)
			assert.Nil(t, err, "credit")

			r, created, err := s.Create(s.Authority(owner), size, funder)
			assert.Nil(t, err, "exact funding for %d", size)
			assert.True(t, created, "created for %d", size)
			assert.Equal(t, record.Capacity(size), r.Capacity(), "capacity for %d", size)
			assert.Equal(t, uint64(0), s.Balance(funder), "funder debited for %d", size)
			assert.Equal(t, required, s.Balance(s.Address(owner)), "record credited for %d", size)
		})
	}
}

func TestCreateInvalidSizeDoesNotDebit(t *testing.T) {
	s := newStore()
	owner := newOwner(4)
	funder := newOwner(5)

	inTransaction(t, func() {
		s.Credit(funder, 1000000000)

		for _, size := range []int{0, -5, 2001} {
			_, _, err := s.Create(s.Authority(owner), size, funder)
			assert.Equal(t, fault.ErrInvalidCollectionSize, err, "size %d", size)
		}
		assert.Equal(t, uint64(1000000000), s.Balance(funder), "no debit")
		assert.False(t, s.Exists(s.Address(owner)), "no record")
	})
}

func TestCreateInsufficientForForty(t *testing.T) {
	s := newStore()
	owner := newOwner(6)
	funder := newOwner(7)
	required := record.DefaultRent().MinimumBalance(8 + 32 + 4 + 5)

	inTransaction(t, func() {
		s.Credit(funder, required-1)
		_, _, err := s.Create(s.Authority(owner), 40, funder)
		assert.Equal(t, fault.ErrInsufficientFunding, err, "insufficient")
		assert.False(t, s.Exists(s.Address(owner)), "no record")
		assert.Equal(t, required-1, s.Balance(funder), "no debit")
	})
}

func TestCreateIsIdempotent(t *testing.T) {
	s := newStore()
	owner := newOwner(8)
	funder := newOwner(9)

	inTransaction(t, func() {
		s.Credit(funder, 100000000)

		r1, created, err := s.Create(s.Authority(owner), 100, funder)
		assert.Nil(t, err, "first create")
		assert.True(t, created, "first created")
		balance := s.Balance(funder)

		_, _, err = s.Write(s.Address(owner), []byte{0xff, 0x01})
		assert.Nil(t, err, "write")

		r2, created, err := s.Create(s.Authority(owner), 100, funder)
		assert.Nil(t, err, "second create")
		assert.False(t, created, "second not created")
		assert.Equal(t, balance, s.Balance(funder), "no second debit")
		assert.Equal(t, r1.Capacity(), r2.Capacity(), "same capacity")
		assert.Equal(t, []byte{0xff, 0x01}, r2.Data[:2], "not re-zeroed")
	})
}

func TestCreateRejectsForeignAuthority(t *testing.T) {
	s := newStore()
	owner := newOwner(10)
	funder := newOwner(11)

	inTransaction(t, func() {
		s.Credit(funder, 100000000)
		wrong := derivation.NewAuthority(programId, []byte("asset"), owner)
		_, _, err := s.Create(wrong, 10, funder)
		assert.Equal(t, fault.ErrInvalidAuthority, err, "other namespace")
		assert.Equal(t, uint64(100000000), s.Balance(funder), "no debit")
	})
}

func TestReadWrite(t *testing.T) {
	s := newStore()
	owner := newOwner(12)
	funder := newOwner(13)
	address := s.Address(owner)

	_, err := s.Read(address)
	assert.Equal(t, fault.ErrRecordNotFound, err, "missing record")

	_, _, err = s.Write(address, []byte{1})
	assert.Equal(t, fault.ErrRecordNotFound, err, "write missing record")

	inTransaction(t, func() {
		s.Credit(funder, 100000000)
		_, _, err := s.Create(s.Authority(owner), 800, funder)
		assert.Nil(t, err, "create")

		r, n, err := s.Write(address, []byte{1, 0, 1})
		assert.Nil(t, err, "write")
		assert.Equal(t, 3, n, "applied")
		assert.Equal(t, []byte{1, 0, 1}, r.Data[:3], "head")
		assert.Equal(t, make([]byte, 97), r.Data[3:], "tail zero")

		r, n, err = s.Write(address, bytes.Repeat([]byte{7}, 150))
		assert.Nil(t, err, "long write")
		assert.Equal(t, 100, n, "clamped")
		assert.Equal(t, 100, r.Capacity(), "capacity unchanged")

		stored, err := s.Read(address)
		assert.Nil(t, err, "read")
		assert.Equal(t, bytes.Repeat([]byte{7}, 100), stored.Data, "persisted")
		assert.Equal(t, owner, stored.Owner, "owner")
	})
}

func TestVerifyAddress(t *testing.T) {
	s := newStore()
	owner := newOwner(14)
	assert.Nil(t, s.Verify(owner, s.Address(owner)), "derived address")
	assert.Equal(t, fault.ErrInvalidAddressDerivation, s.Verify(owner, s.Address(newOwner(15))), "other owner")
}

func TestTransfer(t *testing.T) {
	s := newStore()
	a := newOwner(16)
	b := newOwner(17)

	inTransaction(t, func() {
		s.Credit(a, 10)
		assert.Equal(t, fault.ErrInsufficientFunding, s.Transfer(a, b, 11), "too much")
		assert.Nil(t, s.Transfer(a, b, 4), "transfer")
		assert.Equal(t, uint64(6), s.Balance(a), "from")
		assert.Equal(t, uint64(4), s.Balance(b), "to")
		assert.Nil(t, s.Transfer(a, a, 6), "self")
		assert.Equal(t, uint64(6), s.Balance(a), "self unchanged")
	})
}
