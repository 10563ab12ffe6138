// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"math"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/fault"
)

// Balance - lamports held by an account, zero if never funded
func (s *Store) Balance(a account.Account) uint64 {
	balance, _ := s.balances.GetN(a[:])
	return balance
}

// Credit - add lamports to an account
func (s *Store) Credit(a account.Account, amount uint64) (uint64, error) {
	balance := s.Balance(a)
	if balance > math.MaxUint64-amount {
		return balance, fault.ErrInvalidCount
	}
	balance += amount
	s.balances.PutN(a[:], balance)
	return balance, nil
}

// Transfer - move lamports between accounts
//
// fails without changing either balance if from holds too little
func (s *Store) Transfer(from account.Account, to account.Account, amount uint64) error {
	available := s.Balance(from)
	if available < amount {
		s.log.Warnf("transfer: %s has: %d  needs: %d", from, available, amount)
		return fault.ErrInsufficientFunding
	}
	if from == to || 0 == amount {
		return nil
	}

	_, err := s.Credit(to, amount)
	if nil != err {
		return err
	}
	s.balances.PutN(from[:], available-amount)
	return nil
}
