// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/slot"
)

var (
	slotPositions   = gild.BytesToBytes32([]byte("positions"))
	slotTotalStaked = gild.BytesToBytes32([]byte("total-staked"))
)

type storage struct {
	positions   *slot.Mapping[gild.Address, *Position]
	totalStaked *slot.Uint256
}

func newStorage(ctx *slot.Context) *storage {
	return &storage{
		positions:   slot.NewMapping[gild.Address, *Position](ctx, slotPositions),
		totalStaked: slot.NewUint256(ctx, slotTotalStaked),
	}
}

// getPosition loads the position of addr. Missing entries come back as
// a fresh empty position with existed == false; big.Int fields are
// always non-nil.
func (s *storage) getPosition(addr gild.Address) (pos *Position, existed bool, err error) {
	pos, err = s.positions.Get(addr)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get position")
	}
	if pos == nil {
		return &Position{
			Principal:     new(big.Int),
			AccruedReward: new(big.Int),
		}, false, nil
	}
	if pos.Principal == nil {
		pos.Principal = new(big.Int)
	}
	if pos.AccruedReward == nil {
		pos.AccruedReward = new(big.Int)
	}
	return pos, true, nil
}

func (s *storage) savePosition(addr gild.Address, pos *Position, isNew bool) error {
	if isNew {
		return errors.Wrap(s.positions.Insert(addr, pos), "failed to insert position")
	}
	return errors.Wrap(s.positions.Update(addr, pos), "failed to update position")
}

func (s *storage) getTotalStaked() (*big.Int, error) {
	total, err := s.totalStaked.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total staked")
	}
	return total, nil
}

func (s *storage) addTotalStaked(delta *big.Int) error {
	return errors.Wrap(s.totalStaked.Add(delta), "failed to add total staked")
}

func (s *storage) subTotalStaked(delta *big.Int) error {
	return errors.Wrap(s.totalStaked.Sub(delta), "failed to sub total staked")
}
