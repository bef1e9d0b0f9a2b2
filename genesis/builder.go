// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/kv"
	"github.com/GildCoinDev/gild-crypto/state"
)

// Builder helper to build genesis state.
type Builder struct {
	launchTime uint64

	stateProcs []func(state *state.State) error
}

// LaunchTime set the ledger launch time.
func (b *Builder) LaunchTime(t uint64) *Builder {
	b.launchTime = t
	return b
}

// State add a state process.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ComputeID compute genesis ID, the digest of all slots the presets
// write. Procs must be deterministic for the ID to be stable.
func (b *Builder) ComputeID() (gild.Bytes32, error) {
	store, err := kv.NewMem()
	if err != nil {
		return gild.Bytes32{}, err
	}
	defer store.Close()

	st := state.NewStater(store).NewState()
	if err := b.Apply(st); err != nil {
		return gild.Bytes32{}, err
	}
	return st.Stage().Hash(), nil
}

// Apply run all state presets against the given state.
func (b *Builder) Apply(st *state.State) error {
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return errors.Wrap(err, "state process")
		}
	}
	return nil
}
