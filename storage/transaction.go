// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - the all-or-nothing boundary around pool writes
type Transaction interface {
	Begin() error
	Commit() error
	Abort()
	InUse() bool
}

type transaction struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transaction{
		access: access,
	}
}

func (t *transaction) Begin() error  { return t.access.Begin() }
func (t *transaction) Commit() error { return t.access.Commit() }
func (t *transaction) Abort()        { t.access.Abort() }
func (t *transaction) InUse() bool   { return t.access.InUse() }
