// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/GildCoinDev/gild-crypto/builtin"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/state"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	LaunchTime           uint64           `json:"launchTime"`
	Governor             gild.Address     `json:"governor"`
	RewardRatePercent    *HexOrDecimal256 `json:"rewardRatePercent"`
	InflationRatePercent *HexOrDecimal256 `json:"inflationRatePercent"`
	Accounts             []Account        `json:"accounts"`
}

// Account is an account funded at genesis
type Account struct {
	Address gild.Address     `json:"address"`
	Balance *HexOrDecimal256 `json:"balance"`
}

// NewCustomNet create custom network genesis from a JSON file.
func NewCustomNet(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen CustomGenesis
	if err := json.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "parse genesis file")
	}
	return newCustomNet(&gen)
}

func newCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.LaunchTime == 0 {
		return nil, errors.New("launchTime must be set")
	}
	if gen.Governor.IsZero() {
		return nil, errors.New("governor must be set")
	}

	rewardRate := gild.InitialRewardRatePercent
	if gen.RewardRatePercent != nil {
		rewardRate = (*big.Int)(gen.RewardRatePercent)
		if rewardRate.Sign() < 0 {
			return nil, errors.New("rewardRatePercent must be a non-negative integer")
		}
	}
	inflationRate := gild.InitialInflationRatePercent
	if gen.InflationRatePercent != nil {
		inflationRate = (*big.Int)(gen.InflationRatePercent)
		if inflationRate.Sign() < 0 {
			return nil, errors.New("inflationRatePercent must be a non-negative integer")
		}
	}
	for _, a := range gen.Accounts {
		if a.Balance == nil {
			return nil, fmt.Errorf("%s: balance must be set", a.Address)
		}
		if (*big.Int)(a.Balance).Sign() < 1 {
			return nil, fmt.Errorf("%s: balance must be a non-zero integer", a.Address)
		}
	}

	launchTime := gen.LaunchTime
	governor := gen.Governor
	accounts := gen.Accounts

	builder := new(Builder).
		LaunchTime(launchTime).
		State(func(st *state.State) error {
			use := func(uint64) {}

			token := builtin.Token.Bind(st, use, nil)
			for _, a := range accounts {
				if err := token.Mint(a.Address, (*big.Int)(a.Balance)); err != nil {
					return err
				}
			}

			auth := builtin.Authority.Bind(st, use)
			auth.SetGovernor(governor)

			params := builtin.Params.Bind(st, use)
			params.Set(gild.KeyRewardRate, rewardRate)
			params.Set(gild.KeyInflationRate, inflationRate)

			builtin.Inflation.Bind(st, use, token, params, auth, nil).SetLastTime(launchTime)
			return nil
		})

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	return &Genesis{builder, id, "customnet"}, nil
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
// Copied from go-ethereum/common/math and implement json. Marshaler
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		if err = (*big.Int)(i).UnmarshalJSON(input); err != nil {
			return err
		}
		return nil
	}
	bigint, ok := math.ParseBig256(hex)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", hex)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}
