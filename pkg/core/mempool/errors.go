// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package mempool

import (
	"fmt"
	"math/big"
)

// Typed error kinds returned by the admission and signing paths; callers
// match them with errors.As. Admission callers get them back unchanged;
// the background loops only log failures.

// AlreadyInvalidError means id is cached in the invalid negative-cache.
type AlreadyInvalidError struct{ ID string }

func (e *AlreadyInvalidError) Error() string {
	return fmt.Sprintf("tx %s already processed as invalid", e.ID)
}

// DuplicateInPoolError means id is already present in some pool list.
type DuplicateInPoolError struct{ ID string }

func (e *DuplicateInPoolError) Error() string {
	return fmt.Sprintf("tx %s already in pool", e.ID)
}

// PoolFullError means total count has reached storageLimit.
type PoolFullError struct{}

func (e *PoolFullError) Error() string { return "pool is full" }

// SenderLookupFailedError wraps a failure from the account store.
type SenderLookupFailedError struct{ Cause error }

func (e *SenderLookupFailedError) Error() string {
	return fmt.Sprintf("sender lookup failed: %v", e.Cause)
}

func (e *SenderLookupFailedError) Unwrap() error { return e.Cause }

// RequesterNotFoundError means a multisig sender named a requester public
// key that the account store does not know.
type RequesterNotFoundError struct{}

func (e *RequesterNotFoundError) Error() string { return "requester account not found" }

// ProcessFailedError wraps a failure from transaction.process. Its id is
// cached as invalid.
type ProcessFailedError struct {
	ID    string
	Cause error
}

func (e *ProcessFailedError) Error() string {
	return fmt.Sprintf("tx %s failed process: %v", e.ID, e.Cause)
}

func (e *ProcessFailedError) Unwrap() error { return e.Cause }

// VerifyFailedError wraps a failure from transaction.verify. Its id is
// cached as invalid.
type VerifyFailedError struct {
	ID    string
	Cause error
}

func (e *VerifyFailedError) Error() string {
	return fmt.Sprintf("tx %s failed verify: %v", e.ID, e.Cause)
}

func (e *VerifyFailedError) Unwrap() error { return e.Cause }

// DuplicateTypeForSenderError means the unique-per-sender type rule
// rejected the transaction.
type DuplicateTypeForSenderError struct {
	SenderPublicKey string
	Type            TxType
}

func (e *DuplicateTypeForSenderError) Error() string {
	return fmt.Sprintf("type %s already in pool for sender %s", e.Type, e.SenderPublicKey)
}

// InsufficientFundsError means the solvency check failed. It carries
// the projected balance, needed for sanitization.
type InsufficientFundsError struct {
	Address          string
	ProjectedBalance *big.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("account %s does not have enough funds: projected balance %s", e.Address, e.ProjectedBalance.String())
}

// NotInPoolError means a multisig signing target was not found in pending.
type NotInPoolError struct{ ID string }

func (e *NotInPoolError) Error() string { return fmt.Sprintf("tx %s not in pool", e.ID) }

// PermissionDeniedError means the signer's public key is not a member of
// the multisig keysgroup.
type PermissionDeniedError struct{}

func (e *PermissionDeniedError) Error() string { return "permission denied" }

// AlreadySignedError means the produced signature is already present on
// the transaction.
type AlreadySignedError struct{}

func (e *AlreadySignedError) Error() string { return "already signed" }
