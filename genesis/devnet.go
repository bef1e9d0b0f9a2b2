// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/GildCoinDev/gild-crypto/builtin"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/state"
)

// DevAccount account for development.
type DevAccount struct {
	Address    gild.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"5855ea81b3e6b6ede2f3bb862f9d8de80c7ca05572e230d24e5b7211d9419acf",
		"e17632a43c501865ef7a64f24831a1cd7c4a78327fdb79b9e8ea151409b83ec0",
		"89c04238a2f670311018edbafc710eb0c412f64c085769c22f91c6bdf137a14d",
		"510101f9c272bf9a16ff38eb40ad6d72e3a591069e55b1e7294ab4bde1b96839",
		"f1713ba4145d28917aa00ca98ac29fc61c13ce5f35ae029317af9ae4c9b42b99",
		"4a04104291defd91adaf0af9b12e4945a0aa4c0efd56b137358aca318ba477a0",
		"8b2c9f1c554d6b60c971bd0c6cd529b864643ce9ad74eda78eaa30158d6ab32b",
		"4bb556d663b7fb3421b002f46a604b03378473da4d7a0b005940000d0bd3c1a7",
		"2dc0c24fe98571272ea518f16de3b7e6819eb45cccf07c090e3635f6bd341b21",
		"e8942a5e9b428fb00c695c52bd00d205b606942a807107633b884f8162acd2b2",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{gild.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// NewDevnet create genesis for solo mode. Every dev account starts
// with 1,000,000 GILD and the first one is the governor.
func NewDevnet() *Genesis {
	launchTime := uint64(1735689600) // '2025-01-01T00:00:00Z'

	governor := DevAccounts()[0].Address
	balance := new(big.Int).Mul(big.NewInt(1_000_000), gild.OneGild)

	builder := new(Builder).
		LaunchTime(launchTime).
		State(func(st *state.State) error {
			use := func(uint64) {}

			token := builtin.Token.Bind(st, use, nil)
			for _, a := range DevAccounts() {
				if err := token.Mint(a.Address, balance); err != nil {
					return err
				}
			}

			auth := builtin.Authority.Bind(st, use)
			auth.SetGovernor(governor)

			params := builtin.Params.Bind(st, use)
			params.Set(gild.KeyRewardRate, gild.InitialRewardRatePercent)
			params.Set(gild.KeyInflationRate, gild.InitialInflationRatePercent)

			builtin.Inflation.Bind(st, use, token, params, auth, nil).SetLastTime(launchTime)
			return nil
		})

	id, err := builder.ComputeID()
	if err != nil {
		panic(err)
	}

	return &Genesis{builder, id, "devnet"}
}
