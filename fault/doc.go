// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// every error is a single typed constant so callers compare with ==
// or classify with the IsErr* helpers; failures from the issuance
// collaborator are wrapped in IssuanceError to keep the original cause
package fault
