// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GildCoinDev/gild-crypto/builtin/reverts"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"no error", nil, http.StatusOK, ""},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "boom\n"},
		{"http error", BadRequest(errors.New("bad input")), http.StatusBadRequest, "bad input\n"},
		{"forbidden", Forbidden(errors.New("nope")), http.StatusForbidden, "nope\n"},
		{"status only", HTTPError(nil, http.StatusTeapot), http.StatusTeapot, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWrapHandlerFuncRevert(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantKind   string
	}{
		{reverts.ErrBelowMinimumStake, http.StatusBadRequest, "validation"},
		{reverts.ErrUnbondingNotElapsed, http.StatusTooEarly, "timing"},
		{reverts.ErrNotAuthorized, http.StatusForbidden, "authorization"},
		{reverts.ErrPaused, http.StatusConflict, "state"},
		{reverts.ErrReentrancy, http.StatusConflict, "reentrancy"},
		{reverts.ErrPreemption, http.StatusConflict, "preemption"},
		// wrapping must not hide the kind
		{errors.Wrap(reverts.ErrInvalidAmount, "stake"), http.StatusBadRequest, "validation"},
	}

	for _, tt := range tests {
		t.Run(tt.wantKind, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodPost, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))

			var body RevertResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.err.Error(), body.Error)
		})
	}
}

func TestParseJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	assert.NoError(t, ParseJSON(strings.NewReader(`{"name":"x"}`), &v))
	assert.Equal(t, "x", v.Name)

	// unknown fields are rejected
	assert.Error(t, ParseJSON(strings.NewReader(`{"name":"x","extra":1}`), &v))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, M{"ok": true}))

	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}
