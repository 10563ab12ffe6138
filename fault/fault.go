// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrAlreadyIssued            = ExistsError("asset already issued for owner")
	ErrAssetMismatch            = ExistsError("address already bound to a different asset")
	ErrAssetNotFound            = NotFoundError("asset not found")
	ErrCannotDecodeAccount      = InvalidError("cannot decode account")
	ErrCannotDecodePrivateKey   = InvalidError("cannot decode private key")
	ErrCertificateFileExists    = ExistsError("certificate file already exists")
	ErrFundingDisabled          = ProcessError("funding is disabled")
	ErrInsufficientFunding      = ProcessError("insufficient funding")
	ErrInvalidAddressDerivation = InvalidError("invalid address derivation")
	ErrInvalidAuthority         = InvalidError("invalid authority")
	ErrInvalidCollectionSize    = InvalidError("invalid collection size")
	ErrInvalidCount             = InvalidError("invalid count")
	ErrInvalidIPAddress         = InvalidError("invalid IP address")
	ErrInvalidItems             = InvalidError("invalid items")
	ErrInvalidLength            = LengthError("invalid length")
	ErrInvalidLoggerChannel     = InvalidError("invalid logger channel")
	ErrInvalidStructPointer     = InvalidError("invalid struct pointer")
	ErrIssuanceFailed           = ProcessError("issuance failed")
	ErrKeyFileExists            = ExistsError("key file already exists")
	ErrMissingMetadataField     = InvalidError("missing metadata field")
	ErrMissingParameters        = InvalidError("missing parameters")
	ErrNotInitialised           = NotFoundError("not initialised")
	ErrRateLimiting             = InvalidError("rate limiting")
	ErrReadOnly                 = ProcessError("database is read only")
	ErrRecordCorrupt            = RecordError("record is corrupt")
	ErrRecordNotFound           = NotFoundError("record not found")
	ErrTransactionInUse         = ProcessError("transaction already in use")
	ErrTransactionNotInUse      = ProcessError("transaction not in use")
)

// the error interface methods
func (e GenericError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IssuanceError - a failure reported by the issuance collaborator
//
// the cause is kept verbatim so callers can inspect it
type IssuanceError struct {
	Cause error
}

// NewIssuanceError - wrap a collaborator failure
func NewIssuanceError(cause error) error {
	if nil == cause {
		return nil
	}
	return &IssuanceError{Cause: cause}
}

func (e *IssuanceError) Error() string {
	return string(ErrIssuanceFailed) + ": " + e.Cause.Error()
}

// Unwrap - allow errors.Is to reach the original cause
func (e *IssuanceError) Unwrap() error { return e.Cause }

// Is - every issuance error matches ErrIssuanceFailed
func (e *IssuanceError) Is(target error) bool {
	return target == ErrIssuanceFailed
}

// determine the class of an error
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrLength(e error) bool   { var t LengthError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool   { var t RecordError; return errors.As(e, &t) }
func IsErrIssuance(e error) bool { var t *IssuanceError; return errors.As(e, &t) }
