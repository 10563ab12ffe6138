// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package purchases

import (
	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/bitmask"
	"github.com/bitmark-inc/purchasesd/fault"
	"github.com/bitmark-inc/purchasesd/issuance"
	"github.com/bitmark-inc/purchasesd/merkle"
	"github.com/bitmark-inc/purchasesd/record"
)

// PurchaseArguments - items bought by owner
type PurchaseArguments struct {
	Owner          account.Account
	Payer          *account.Account // nil: owner pays
	Address        *account.Account // nil: no caller supplied address to check
	Items          []byte
	CollectionSize *int // nil: configured default
	Collection     *issuance.Collection
}

// PurchaseResult - state after a purchase
type PurchaseResult struct {
	Address account.Account
	AssetId account.Account
	Minted  bool
	Created bool
	Applied int
	Record  *record.Record
}

// Purchase - ensure the owner's asset and record exist then apply items
func (l *Ledger) Purchase(arguments *PurchaseArguments) (*PurchaseResult, error) {
	l.Lock()
	defer l.Unlock()

	size, lamports, err := l.requirement(arguments.CollectionSize)
	if nil != err {
		return nil, err
	}

	owner := arguments.Owner
	payer := payerOf(owner, arguments.Payer)
	result := &PurchaseResult{}

	err = l.transact(func() error {
		err := l.verify(owner, arguments.Address)
		if nil != err {
			return err
		}

		authority := l.store.Authority(owner)
		address := authority.Address()

		// fail before issuance if the record cannot be funded
		if !l.store.Exists(address) && l.store.Balance(payer) < lamports {
			return fault.ErrInsufficientFunding
		}

		id, minted, err := l.coordinator.EnsureIssued(authority, owner, arguments.Collection)
		if nil != err {
			return err
		}

		_, created, err := l.store.Create(authority, size, payer)
		if nil != err {
			return err
		}

		r, n, err := l.store.Write(address, arguments.Items)
		if nil != err {
			return err
		}

		result.Address = address
		result.AssetId = id
		result.Minted = minted
		result.Created = created
		result.Applied = n
		result.Record = r
		return nil
	})
	if nil != err {
		l.log.Errorf("purchase owner: %s error: %s", owner, err)
		return nil, err
	}

	l.log.Infof("purchase owner: %s  address: %s  minted: %t  created: %t  applied: %d", owner, result.Address, result.Minted, result.Created, result.Applied)
	return result, nil
}

// InitializeArguments - bind an externally issued asset and create the record
type InitializeArguments struct {
	Owner          account.Account
	Payer          *account.Account
	Address        *account.Account
	AssetId        account.Account
	CollectionSize *int
}

// InitializeResult - the record after initialisation
type InitializeResult struct {
	Address account.Account
	Created bool
	Record  *record.Record
}

// Initialize - create the owner's zeroed record bound to a known asset
//
// fails if the owner is already bound to a different asset; an
// existing record is returned unchanged
func (l *Ledger) Initialize(arguments *InitializeArguments) (*InitializeResult, error) {
	l.Lock()
	defer l.Unlock()

	size, _, err := l.requirement(arguments.CollectionSize)
	if nil != err {
		return nil, err
	}

	owner := arguments.Owner
	payer := payerOf(owner, arguments.Payer)
	result := &InitializeResult{}

	err = l.transact(func() error {
		err := l.verify(owner, arguments.Address)
		if nil != err {
			return err
		}

		err = l.coordinator.Bind(owner, arguments.AssetId)
		if nil != err {
			return err
		}

		authority := l.store.Authority(owner)
		r, created, err := l.store.Create(authority, size, payer)
		if nil != err {
			return err
		}

		result.Address = authority.Address()
		result.Created = created
		result.Record = r
		return nil
	})
	if nil != err {
		l.log.Errorf("initialize owner: %s error: %s", owner, err)
		return nil, err
	}

	l.log.Infof("initialize owner: %s  asset: %s  address: %s  created: %t", owner, arguments.AssetId, result.Address, result.Created)
	return result, nil
}

// FetchResult - copy of an owner's record
type FetchResult struct {
	Address   account.Account
	Data      []byte
	Purchased []uint64
}

// FetchData - read the owner's bitmask
func (l *Ledger) FetchData(owner account.Account, supplied *account.Account) (*FetchResult, error) {
	l.Lock()
	defer l.Unlock()

	err := l.verify(owner, supplied)
	if nil != err {
		return nil, err
	}

	address := l.store.Address(owner)
	r, err := l.store.Read(address)
	if nil != err {
		return nil, err
	}

	return &FetchResult{
		Address:   address,
		Data:      r.Data,
		Purchased: bitmask.Items(r.Data),
	}, nil
}

// AddPurchaseResult - state after adding items
type AddPurchaseResult struct {
	Address account.Account
	Applied int
	Record  *record.Record
}

// AddPurchase - apply items to an existing record
func (l *Ledger) AddPurchase(owner account.Account, supplied *account.Account, items []byte) (*AddPurchaseResult, error) {
	l.Lock()
	defer l.Unlock()

	result := &AddPurchaseResult{}

	err := l.transact(func() error {
		err := l.verify(owner, supplied)
		if nil != err {
			return err
		}

		address := l.store.Address(owner)
		r, n, err := l.store.Write(address, items)
		if nil != err {
			return err
		}

		result.Address = address
		result.Applied = n
		result.Record = r
		return nil
	})
	if nil != err {
		return nil, err
	}

	l.log.Debugf("add purchase owner: %s  applied: %d", owner, result.Applied)
	return result, nil
}

// Balance - lamports held by an account
func (l *Ledger) Balance(a account.Account) uint64 {
	l.Lock()
	defer l.Unlock()
	return l.store.Balance(a)
}

// Fund - credit an account from nowhere
//
// only permitted when funding is enabled in the configuration
func (l *Ledger) Fund(a account.Account, amount uint64) (uint64, error) {
	if !l.configuration.AllowFunding {
		return 0, fault.ErrFundingDisabled
	}

	l.Lock()
	defer l.Unlock()

	balance := uint64(0)
	err := l.transact(func() error {
		var err error
		balance, err = l.store.Credit(a, amount)
		return err
	})
	if nil != err {
		return 0, err
	}

	l.log.Infof("fund: %s  amount: %d  balance: %d", a, amount, balance)
	return balance, nil
}

// AssetResult - an asset and the current root of its tree
type AssetResult struct {
	Asset *issuance.Asset
	Root  merkle.Digest
}

// Asset - read back an asset minted by the in-process issuer
func (l *Ledger) Asset(id account.Account) (*AssetResult, error) {
	reader, ok := l.issuer.(AssetReader)
	if !ok {
		return nil, fault.ErrAssetNotFound
	}

	l.Lock()
	defer l.Unlock()

	asset, err := reader.Asset(id)
	if nil != err {
		return nil, err
	}
	root, err := reader.Root()
	if nil != err {
		return nil, err
	}
	return &AssetResult{
		Asset: asset,
		Root:  root,
	}, nil
}

// Status - the owner's issuance state
func (l *Ledger) Status(owner account.Account) (issuance.Status, error) {
	l.Lock()
	defer l.Unlock()
	return l.issuer.Lookup(owner)
}
