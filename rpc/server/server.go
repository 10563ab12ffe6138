// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/purchasesd/purchases"
	rpcpurchases "github.com/bitmark-inc/purchasesd/rpc/purchases"
)

// Create - an RPC server with every service registered
func Create(log *logger.L, ledger *purchases.Ledger) *rpc.Server {
	server := rpc.NewServer()

	_ = server.Register(rpcpurchases.New(log, ledger))

	return server
}
