// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts holds the user facing failures of the hub contract.
// A revert aborts the whole command; anything else returned by the hub is a host failure.
package reverts

import (
	"errors"
	"fmt"
)

type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) revert() {}

type revert interface {
	error
	revert()
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var r revert
	return errors.As(e, &r)
}

var (
	ErrNoValidatorsFound              = New("Something went wrong querying the validators of the network")
	ErrNoFundsReceived                = New("Funds were not received")
	ErrCollaboratorNotProvisioned     = New("NFT contract address not set")
	ErrCollaboratorAlreadyProvisioned = New("NFT contract address already set")
	ErrNoInstantiateEvent             = New("No instantiate event found")
	ErrNoContractAddressAttr          = New("No '_contract_address' attribute found")
)

type ErrUnauthorized struct {
	Expected string
	Received string
}

func (e *ErrUnauthorized) Error() string {
	return fmt.Sprintf("Unauthorized NFT owner, expected '%s', received '%s'", e.Expected, e.Received)
}

func (e *ErrUnauthorized) revert() {}

type ErrNoDelegationsFound struct {
	TokenID string
}

func (e *ErrNoDelegationsFound) Error() string {
	return fmt.Sprintf("NFT '%s' has no delegations", e.TokenID)
}

func (e *ErrNoDelegationsFound) revert() {}

type ErrMalformedRecord struct {
	Input  string
	Reason string
}

func (e *ErrMalformedRecord) Error() string {
	return fmt.Sprintf("Malformed delegation record '%s': %s", e.Input, e.Reason)
}

func (e *ErrMalformedRecord) revert() {}

type ErrUnbondingImpossible struct {
	TokenID string
}

func (e *ErrUnbondingImpossible) Error() string {
	return fmt.Sprintf("Cannot unbond the '%s' NFT", e.TokenID)
}

func (e *ErrUnbondingImpossible) revert() {}

type ErrRedelegatingImpossible struct {
	TokenID string
}

func (e *ErrRedelegatingImpossible) Error() string {
	return fmt.Sprintf("Cannot redelegate the '%s' NFT", e.TokenID)
}

func (e *ErrRedelegatingImpossible) revert() {}

type ErrRedeemBondImpossible struct {
	TokenID string
}

func (e *ErrRedeemBondImpossible) Error() string {
	return fmt.Sprintf("Cannot redeem bond of the '%s' NFT", e.TokenID)
}

func (e *ErrRedeemBondImpossible) revert() {}

// ErrAcknowledgementFailed carries an upstream failure reported back to the hub.
type ErrAcknowledgementFailed struct {
	Action   string
	Upstream string
}

func (e *ErrAcknowledgementFailed) Error() string {
	return fmt.Sprintf("Error %s: %s", e.Action, e.Upstream)
}

func (e *ErrAcknowledgementFailed) revert() {}
