package builtin

import (
	"github.com/GildCoinDev/gild-crypto/builtin/authority"
	"github.com/GildCoinDev/gild-crypto/builtin/inflation"
	"github.com/GildCoinDev/gild-crypto/builtin/params"
	"github.com/GildCoinDev/gild-crypto/builtin/token"
	"github.com/GildCoinDev/gild-crypto/builtin/vault"
	"github.com/GildCoinDev/gild-crypto/events"
	"github.com/GildCoinDev/gild-crypto/slot"
	"github.com/GildCoinDev/gild-crypto/state"
)

// Builtin modules binding.
var (
	Params    = &paramsModule{newModule("params")}
	Authority = &authorityModule{newModule("authority")}
	Token     = &tokenModule{newModule("token")}
	Vault     = &vaultModule{newModule("vault")}
	Inflation = &inflationModule{newModule("inflation")}
)

type (
	paramsModule    struct{ *module }
	authorityModule struct{ *module }
	tokenModule     struct{ *module }
	vaultModule     struct{ *module }
	inflationModule struct{ *module }
)

func (p *paramsModule) Bind(state *state.State, use slot.UseBudgetFunc) *params.Params {
	return params.New(slot.NewContext(p.Address, state, use))
}

func (a *authorityModule) Bind(state *state.State, use slot.UseBudgetFunc) *authority.Authority {
	return authority.New(slot.NewContext(a.Address, state, use))
}

func (t *tokenModule) Bind(state *state.State, use slot.UseBudgetFunc, recorder *events.Recorder) *token.Token {
	return token.New(slot.NewContext(t.Address, state, use), recorder)
}

func (v *vaultModule) Bind(
	state *state.State,
	use slot.UseBudgetFunc,
	token *token.Token,
	params *params.Params,
	auth *authority.Authority,
	recorder *events.Recorder,
) *vault.Vault {
	return vault.New(slot.NewContext(v.Address, state, use), token, params, auth, recorder)
}

func (i *inflationModule) Bind(
	state *state.State,
	use slot.UseBudgetFunc,
	token *token.Token,
	params *params.Params,
	auth *authority.Authority,
	recorder *events.Recorder,
) *inflation.Inflation {
	return inflation.New(slot.NewContext(i.Address, state, use), Vault.Address, token, params, auth, recorder)
}
