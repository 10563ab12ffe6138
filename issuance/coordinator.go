// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuance

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/account"
	"github.com/bitmark-inc/purchasesd/derivation"
	"github.com/bitmark-inc/purchasesd/fault"
)

// Coordinator - ensures an owner is issued at most one asset
type Coordinator struct {
	log             *logger.L
	issuanceProgram account.Account
	policy          Policy
	issuer          Issuer
}

// NewCoordinator - create a coordinator over an issuer
func NewCoordinator(log *logger.L, issuanceProgram account.Account, policy Policy, issuer Issuer) *Coordinator {
	return &Coordinator{
		log:             log,
		issuanceProgram: issuanceProgram,
		policy:          policy,
		issuer:          issuer,
	}
}

// EnsureIssued - the owner's asset id, minting it if necessary
//
// the issuer is consulted exactly once; minted is true only when
// this call created the asset
func (c *Coordinator) EnsureIssued(authority derivation.Authority, owner account.Account, collection *Collection) (account.Account, bool, error) {
	status, err := c.issuer.Lookup(owner)
	if nil != err {
		return account.Account{}, false, fault.NewIssuanceError(err)
	}

	switch s := status.(type) {
	case Issued:
		c.log.Debugf("owner: %s already holds: %s", owner, s.ID)
		return s.ID, false, nil

	case NotIssued:
		metadata := c.policy.Metadata(owner, collection)
		err := metadata.Validate()
		if nil != err {
			return account.Account{}, false, err
		}

		tree, leafIndex, err := c.issuer.Mint(authority, owner, metadata)
		if nil != err {
			c.log.Errorf("mint for owner: %s error: %s", owner, err)
			return account.Account{}, false, fault.NewIssuanceError(err)
		}

		id := AssetID(c.issuanceProgram, tree, leafIndex)
		c.log.Infof("minted: %s  owner: %s  tree: %s  leaf: %d", id, owner, tree, leafIndex)
		return id, true, nil

	default:
		logger.Panicf("issuance: unhandled status: %#v", status)
	}
	return account.Account{}, false, nil
}

// Bind - associate an externally issued asset with owner
//
// an owner that already holds a different asset is rejected
func (c *Coordinator) Bind(owner account.Account, id account.Account) error {
	status, err := c.issuer.Lookup(owner)
	if nil != err {
		return fault.NewIssuanceError(err)
	}

	switch s := status.(type) {
	case Issued:
		if s.ID != id {
			return fault.ErrAssetMismatch
		}
		return nil

	case NotIssued:
		err := c.issuer.Bind(owner, id)
		if nil != err {
			if fault.IsErrExists(err) {
				return err
			}
			return fault.NewIssuanceError(err)
		}
		c.log.Infof("bound: %s  owner: %s", id, owner)
		return nil

	default:
		logger.Panicf("issuance: unhandled status: %#v", status)
	}
	return nil
}
