// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package governance

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/GildCoinDev/gild-crypto/api/restutil"
	"github.com/GildCoinDev/gild-crypto/api/staking"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/ledger"
)

// Governance exposes the governor-gated knobs: boost, rates, the pause
// switch and the governor handoff.
type Governance struct {
	ledger *ledger.Ledger
}

// BoostRequest request body of POST /governance/boost.
type BoostRequest struct {
	Caller  gild.Address `json:"caller"`
	Account gild.Address `json:"account"`
	Value   uint8        `json:"value"`
}

// RateRequest request body of the rate setters.
type RateRequest struct {
	Caller gild.Address     `json:"caller"`
	Value  *math.Decimal256 `json:"value"`
}

// PauseRequest request body of POST /governance/pause.
type PauseRequest struct {
	Caller gild.Address `json:"caller"`
	Paused bool         `json:"paused"`
}

// GovernorRequest request body of POST /governance/governor.
type GovernorRequest struct {
	Caller   gild.Address `json:"caller"`
	Governor gild.Address `json:"governor"`
}

// GovernorResponse response body of GET /governance/governor.
type GovernorResponse struct {
	Governor gild.Address `json:"governor"`
}

func New(ledger *ledger.Ledger) *Governance {
	return &Governance{
		ledger,
	}
}

func (g *Governance) handleSetBoost(w http.ResponseWriter, r *http.Request) error {
	var req BoostRequest
	if err := restutil.ParseJSON(r.Body, &req); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := g.ledger.SetGoldBoost(req.Caller, req.Account, req.Value)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, staking.ConvertReceipt(receipt))
}

func parseRateRequest(r *http.Request) (*RateRequest, error) {
	var req RateRequest
	if err := restutil.ParseJSON(r.Body, &req); err != nil {
		return nil, restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if req.Value == nil {
		return nil, restutil.BadRequest(errors.New("value: missing"))
	}
	return &req, nil
}

func (g *Governance) handleSetRewardRate(w http.ResponseWriter, r *http.Request) error {
	req, err := parseRateRequest(r)
	if err != nil {
		return err
	}
	receipt, err := g.ledger.SetRewardRate(req.Caller, (*big.Int)(req.Value))
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, staking.ConvertReceipt(receipt))
}

func (g *Governance) handleSetInflationRate(w http.ResponseWriter, r *http.Request) error {
	req, err := parseRateRequest(r)
	if err != nil {
		return err
	}
	receipt, err := g.ledger.SetInflationRate(req.Caller, (*big.Int)(req.Value))
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, staking.ConvertReceipt(receipt))
}

func (g *Governance) handleSetPaused(w http.ResponseWriter, r *http.Request) error {
	var req PauseRequest
	if err := restutil.ParseJSON(r.Body, &req); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := g.ledger.SetPaused(req.Caller, req.Paused)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, staking.ConvertReceipt(receipt))
}

func (g *Governance) handleSetGovernor(w http.ResponseWriter, r *http.Request) error {
	var req GovernorRequest
	if err := restutil.ParseJSON(r.Body, &req); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := g.ledger.SetGovernor(req.Caller, req.Governor)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, staking.ConvertReceipt(receipt))
}

func (g *Governance) handleGetGovernor(w http.ResponseWriter, _ *http.Request) error {
	governor, err := g.ledger.Governor()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &GovernorResponse{Governor: governor})
}

func (g *Governance) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/boost").
		Methods(http.MethodPost).
		Name("governance_post_boost").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleSetBoost))
	sub.Path("/reward-rate").
		Methods(http.MethodPost).
		Name("governance_post_reward_rate").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleSetRewardRate))
	sub.Path("/inflation-rate").
		Methods(http.MethodPost).
		Name("governance_post_inflation_rate").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleSetInflationRate))
	sub.Path("/pause").
		Methods(http.MethodPost).
		Name("governance_post_pause").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleSetPaused))
	sub.Path("/governor").
		Methods(http.MethodPost).
		Name("governance_post_governor").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleSetGovernor))
	sub.Path("/governor").
		Methods(http.MethodGet).
		Name("governance_get_governor").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleGetGovernor))
}
