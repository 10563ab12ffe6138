// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/bitmask"
	"github.com/bitmark-inc/purchasesd/derivation"
	"github.com/bitmark-inc/purchasesd/fault"
	"github.com/bitmark-inc/purchasesd/storage"
)

// DefaultMaximumCollectionSize - largest number of items in one record
const DefaultMaximumCollectionSize = 2000

// Parameters - fixed policy for a store
type Parameters struct {
	ProgramId             account.Account
	Tag                   []byte
	MaximumCollectionSize int
	Rent                  Rent
}

// Store - create, read and update records
//
// every write goes through the storage handles so it lands in the
// caller's open transaction; callers must not mutate one record from
// two goroutines at once
type Store struct {
	log        *logger.L
	parameters Parameters
	records    storage.Handle
	balances   storage.Handle
}

// NewStore - create a record store over the given pools
func NewStore(log *logger.L, parameters Parameters, records storage.Handle, balances storage.Handle) *Store {
	if parameters.MaximumCollectionSize <= 0 {
		parameters.MaximumCollectionSize = DefaultMaximumCollectionSize
	}
	return &Store{
		log:        log,
		parameters: parameters,
		records:    records,
		balances:   balances,
	}
}

// Address - the derived record address for owner
func (s *Store) Address(owner account.Account) account.Account {
	address, _ := derivation.Derive(s.parameters.ProgramId, s.parameters.Tag, owner)
	return address
}

// Authority - authority over the record address of owner
func (s *Store) Authority(owner account.Account) derivation.Authority {
	return derivation.NewAuthority(s.parameters.ProgramId, s.parameters.Tag, owner)
}

// Verify - check a caller supplied address against the derivation for owner
func (s *Store) Verify(owner account.Account, supplied account.Account) error {
	_, err := derivation.Verify(s.parameters.ProgramId, s.parameters.Tag, owner, supplied)
	return err
}

// Exists - true if a record is stored at address
func (s *Store) Exists(address account.Account) bool {
	return s.records.Has(address[:])
}

// Requirement - data capacity and funding needed for a collection
func (s *Store) Requirement(collectionSize int) (int, uint64, error) {
	if collectionSize <= 0 || collectionSize > s.parameters.MaximumCollectionSize {
		return 0, 0, fault.ErrInvalidCollectionSize
	}
	capacity := Capacity(collectionSize)
	return capacity, s.parameters.Rent.MinimumBalance(Space(capacity)), nil
}

// Create - allocate and fund a zeroed record at the authority's address
//
// if a record already exists it is returned unchanged with created
// set to false and the funder is not charged again
func (s *Store) Create(authority derivation.Authority, collectionSize int, funder account.Account) (*Record, bool, error) {
	capacity, lamports, err := s.Requirement(collectionSize)
	if nil != err {
		return nil, false, err
	}

	err = authority.Check(s.parameters.ProgramId, s.parameters.Tag)
	if nil != err {
		return nil, false, err
	}

	address := authority.Address()
	if s.Exists(address) {
		r, err := s.Read(address)
		if nil != err {
			return nil, false, err
		}
		s.log.Debugf("record: %s already exists", address)
		return r, false, nil
	}

	err = s.Transfer(funder, address, lamports)
	if nil != err {
		return nil, false, err
	}

	r := &Record{
		Owner: authority.Owner(),
		Data:  make([]byte, capacity),
	}
	s.records.Put(address[:], r.Pack())

	s.log.Infof("record: %s created capacity: %d  funded: %d by: %s", address, capacity, lamports, funder)

	return r, true, nil
}

// Read - fetch the record at address
func (s *Store) Read(address account.Account) (*Record, error) {
	buffer := s.records.Get(address[:])
	if nil == buffer {
		return nil, fault.ErrRecordNotFound
	}
	r, err := Unpack(buffer)
	if nil != err {
		s.log.Errorf("record: %s unpack error: %s", address, err)
		return nil, err
	}
	return r, nil
}

// Write - apply items to the record at address
//
// returns the updated record and the number of bytes applied
func (s *Store) Write(address account.Account, items []byte) (*Record, int, error) {
	r, err := s.Read(address)
	if nil != err {
		return nil, 0, err
	}

	n := bitmask.Apply(r.Data, items)
	s.records.Put(address[:], r.Pack())

	s.log.Debugf("record: %s applied: %d of %d bytes", address, n, len(items))

	return r, n, nil
}
