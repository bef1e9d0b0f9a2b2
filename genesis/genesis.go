// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/GildCoinDev/gild-crypto/builtin"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/state"
)

// Genesis describes how to seed an empty ledger.
type Genesis struct {
	builder *Builder
	id      gild.Bytes32
	name    string
}

// Build seed the given state and stamp it with the genesis ID.
// Changes are journaled only; committing is up to the caller.
func (g *Genesis) Build(st *state.State) error {
	if err := g.builder.Apply(st); err != nil {
		return err
	}
	st.SetStorage(builtin.Params.Address, gild.KeyGenesisID, g.id)
	return nil
}

// Verify check that the given state was seeded by this genesis.
func (g *Genesis) Verify(st *state.State) error {
	stamped, err := st.GetStorage(builtin.Params.Address, gild.KeyGenesisID)
	if err != nil {
		return err
	}
	if stamped != g.id {
		return errors.Errorf("genesis mismatch: data dir seeded by %v, want %v", stamped, g.id)
	}
	return nil
}

// ID returns genesis ID.
func (g *Genesis) ID() gild.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// LaunchTime returns the ledger launch time.
func (g *Genesis) LaunchTime() uint64 {
	return g.builder.launchTime
}
