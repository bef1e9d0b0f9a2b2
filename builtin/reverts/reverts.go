// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Kind classifies a revert so callers can map aborts to a response
// without string matching.
type Kind int

const (
	Validation Kind = iota + 1
	Timing
	Authorization
	State
	Reentrancy
	Preemption
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Timing:
		return "timing"
	case Authorization:
		return "authorization"
	case State:
		return "state"
	case Reentrancy:
		return "reentrancy"
	case Preemption:
		return "preemption"
	default:
		return "unknown"
	}
}

// ErrRevert aborts a guarded operation. Every revert rolls the whole
// operation back; there is no partially applied state.
type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

// Named failures of the ledger. Operations return these values directly
// so errors.Is works across wrapping.
var (
	ErrBelowMinimumStake   = New(Validation, "stake below minimum")
	ErrInvalidAmount       = New(Validation, "invalid amount")
	ErrInsufficientBalance = New(Validation, "insufficient balance")
	ErrBoostAboveCap       = New(Validation, "boost above cap")
	ErrSupplyCap           = New(Validation, "total supply cap exceeded")
	ErrBudgetExhausted     = New(Validation, "operation budget exhausted")

	ErrUnbondingNotElapsed = New(Timing, "unbonding period not elapsed")

	ErrNotAuthorized = New(Authorization, "caller is not the governor")

	ErrPaused    = New(State, "system is paused")
	ErrNotPaused = New(State, "system is not paused")

	ErrReentrancy = New(Reentrancy, "reentrant call")
	ErrPreemption = New(Preemption, "preemption suspected")
)

// IsRevertErr reports whether err carries an ErrRevert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf extracts the revert kind of err. ok is false for non-revert
// errors, e.g. storage faults.
func KindOf(err error) (Kind, bool) {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind, true
	}
	return 0, false
}
