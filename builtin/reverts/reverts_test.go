// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", Validation.String())
	assert.Equal(t, "timing", Timing.String())
	assert.Equal(t, "authorization", Authorization.String())
	assert.Equal(t, "state", State.String())
	assert.Equal(t, "reentrancy", Reentrancy.String())
	assert.Equal(t, "preemption", Preemption.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		err  *ErrRevert
		kind Kind
	}{
		{ErrBelowMinimumStake, Validation},
		{ErrInvalidAmount, Validation},
		{ErrInsufficientBalance, Validation},
		{ErrBoostAboveCap, Validation},
		{ErrSupplyCap, Validation},
		{ErrBudgetExhausted, Validation},
		{ErrUnbondingNotElapsed, Timing},
		{ErrNotAuthorized, Authorization},
		{ErrPaused, State},
		{ErrNotPaused, State},
		{ErrReentrancy, Reentrancy},
		{ErrPreemption, Preemption},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.err.Kind(), tt.err.Error())
	}
}

func TestIsRevertErr(t *testing.T) {
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("not an error"))
	assert.False(t, IsRevertErr(errors.New("plain error")))

	assert.True(t, IsRevertErr(ErrPaused))
	assert.True(t, IsRevertErr(New(Validation, "custom")))
	assert.True(t, IsRevertErr(errors.Wrap(ErrReentrancy, "wrapped")))
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(ErrUnbondingNotElapsed)
	assert.True(t, ok)
	assert.Equal(t, Timing, kind)

	kind, ok = KindOf(errors.Wrap(ErrNotAuthorized, "set reward rate"))
	assert.True(t, ok)
	assert.Equal(t, Authorization, kind)

	_, ok = KindOf(errors.New("io failure"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}

func TestErrorsIsAcrossWrap(t *testing.T) {
	wrapped := errors.Wrap(ErrInsufficientBalance, "unstake")
	assert.True(t, errors.Is(wrapped, ErrInsufficientBalance))
	assert.False(t, errors.Is(wrapped, ErrInvalidAmount))
}
