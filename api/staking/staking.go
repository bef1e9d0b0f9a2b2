// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/GildCoinDev/gild-crypto/api/restutil"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/ledger"
)

// Staking exposes the staking ledger: the status view, stored
// positions and the five mutating operations.
type Staking struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Staking {
	return &Staking{
		ledger,
	}
}

func (s *Staking) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	status, err := s.ledger.Status()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertStatus(status))
}

func (s *Staking) handleGetPosition(w http.ResponseWriter, r *http.Request) error {
	addr, err := gild.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	at := s.ledger.Now()
	if q := r.URL.Query().Get("at"); q != "" {
		if at, err = strconv.ParseUint(q, 10, 64); err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "at"))
		}
	}
	pos, pending, err := s.ledger.PositionOf(addr, at)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertPosition(pos, pending, at))
}

func (s *Staking) handleGetBalance(w http.ResponseWriter, r *http.Request) error {
	addr, err := gild.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	balance, err := s.ledger.BalanceOf(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &Balance{Balance: decimal(balance)})
}

// parseStakeRequest rejects bodies without a usable amount before the
// engine is ever entered.
func parseStakeRequest(r *http.Request) (*StakeRequest, error) {
	var req StakeRequest
	if err := restutil.ParseJSON(r.Body, &req); err != nil {
		return nil, restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if req.Amount == nil {
		return nil, restutil.BadRequest(errors.New("amount: missing"))
	}
	return &req, nil
}

func (s *Staking) handleStake(w http.ResponseWriter, r *http.Request) error {
	req, err := parseStakeRequest(r)
	if err != nil {
		return err
	}
	receipt, err := s.ledger.Stake(req.Caller, (*big.Int)(req.Amount))
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, ConvertReceipt(receipt))
}

func (s *Staking) handleUnstake(w http.ResponseWriter, r *http.Request) error {
	req, err := parseStakeRequest(r)
	if err != nil {
		return err
	}
	receipt, err := s.ledger.Unstake(req.Caller, (*big.Int)(req.Amount))
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, ConvertReceipt(receipt))
}

func (s *Staking) handleClaim(w http.ResponseWriter, r *http.Request) error {
	var req CallerRequest
	if err := restutil.ParseJSON(r.Body, &req); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := s.ledger.Claim(req.Caller)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, ConvertReceipt(receipt))
}

func (s *Staking) handleEmergencyWithdraw(w http.ResponseWriter, r *http.Request) error {
	req, err := parseStakeRequest(r)
	if err != nil {
		return err
	}
	receipt, err := s.ledger.EmergencyWithdraw(req.Caller, (*big.Int)(req.Amount))
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, ConvertReceipt(receipt))
}

func (s *Staking) handleMintInflation(w http.ResponseWriter, r *http.Request) error {
	var req CallerRequest
	if err := restutil.ParseJSON(r.Body, &req); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := s.ledger.MintInflation(req.Caller)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, ConvertReceipt(receipt))
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").
		Methods(http.MethodGet).
		Name("ledger_get_status").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetStatus))
	sub.Path("/positions/{address}").
		Methods(http.MethodGet).
		Name("ledger_get_position").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetPosition))
	sub.Path("/balances/{address}").
		Methods(http.MethodGet).
		Name("ledger_get_balance").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetBalance))
	sub.Path("/stakes").
		Methods(http.MethodPost).
		Name("ledger_post_stake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleStake))
	sub.Path("/unstakes").
		Methods(http.MethodPost).
		Name("ledger_post_unstake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/claims").
		Methods(http.MethodPost).
		Name("ledger_post_claim").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleClaim))
	sub.Path("/emergency-withdrawals").
		Methods(http.MethodPost).
		Name("ledger_post_emergency_withdrawal").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleEmergencyWithdraw))
	sub.Path("/inflation").
		Methods(http.MethodPost).
		Name("ledger_post_inflation").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleMintInflation))
}
