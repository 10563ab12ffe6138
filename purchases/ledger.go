// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package purchases

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/fault"
	"github.com/bitmark-inc/purchasesd/issuance"
	"github.com/bitmark-inc/purchasesd/merkle"
	"github.com/bitmark-inc/purchasesd/record"
	"github.com/bitmark-inc/purchasesd/storage"
)

// AssetReader - optional issuer capability to read back minted assets
type AssetReader interface {
	Asset(id account.Account) (*issuance.Asset, error)
	Root() (merkle.Digest, error)
}

// Ledger - serialises all operations on records and issuance
type Ledger struct {
	sync.Mutex

	log           *logger.L
	configuration Configuration
	store         *record.Store
	coordinator   *issuance.Coordinator
	issuer        issuance.Issuer
}

// New - create a ledger over the initialised storage pools
func New(configuration *Configuration, issuer issuance.Issuer) (*Ledger, error) {
	if nil == issuer {
		return nil, fault.ErrMissingParameters
	}

	c := configuration.withDefaults()

	parameters := record.Parameters{
		ProgramId:             c.RecordProgram,
		Tag:                   c.RecordTag,
		MaximumCollectionSize: c.MaximumCollectionSize,
		Rent:                  c.Rent,
	}

	l := &Ledger{
		log:           logger.New("purchases"),
		configuration: c,
		store:         record.NewStore(logger.New("record"), parameters, storage.Pool.Records, storage.Pool.Balances),
		coordinator:   issuance.NewCoordinator(logger.New("issuance"), c.IssuanceProgram, c.Policy, issuer),
		issuer:        issuer,
	}
	return l, nil
}

// Address - the record address for owner
func (l *Ledger) Address(owner account.Account) account.Account {
	return l.store.Address(owner)
}

// run f in a transaction; commit on success, abort otherwise
func (l *Ledger) transact(f func() error) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	err = f()
	if nil != err {
		return err
	}

	err = trx.Commit()
	if nil != err {
		l.log.Criticalf("commit error: %s", err)
		return err
	}
	committed = true
	return nil
}

// resolve the optional collection size and its funding requirement
func (l *Ledger) requirement(collectionSize *int) (int, uint64, error) {
	size := l.configuration.DefaultCollectionSize
	if nil != collectionSize {
		size = *collectionSize
	}
	_, lamports, err := l.store.Requirement(size)
	return size, lamports, err
}

// check a caller supplied address, if any
func (l *Ledger) verify(owner account.Account, supplied *account.Account) error {
	if nil == supplied {
		return nil
	}
	err := l.store.Verify(owner, *supplied)
	if nil != err {
		l.log.Warnf("owner: %s supplied address: %s does not match derivation", owner, *supplied)
	}
	return err
}

// payer defaults to the owner
func payerOf(owner account.Account, payer *account.Account) account.Account {
	if nil == payer {
		return owner
	}
	return *payer
}
