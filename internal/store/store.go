package store

import (
	"errors"
	"time"

	"bilty/internal/core"
)

// Ports for the locally persisted session state. The token lives in two
// places at once (the state database for the client, a cookie for the
// request-routing layer); TokenStore hides that duality behind one
// interface with two backing adapters.
type (
	TokenStore interface {
		SetToken(token string) error
		// Token returns the stored token and whether one is present.
		Token() (string, bool)
		ClearToken() error
	}

	// UserCache persists the cached user snapshot together with its
	// freshness timestamp. Snapshot and timestamp are replaced as a unit.
	UserCache interface {
		SetUser(u core.User, at time.Time) error
		User() (core.User, time.Time, bool)
		ClearUser() error
	}

	// CredentialStore remembers the login email for the "remember me"
	// checkbox. The password is deliberately never persisted.
	CredentialStore interface {
		RememberEmail(email string) error
		RememberedEmail() (string, bool)
		ForgetEmail() error
	}
)

// Dual fans a TokenStore out over the local state database and the cookie
// mirror. Writes go to both; reads prefer the local store and fall back to
// the cookie.
type Dual struct {
	local  TokenStore
	mirror TokenStore
}

func NewDual(local, mirror TokenStore) *Dual {
	return &Dual{local: local, mirror: mirror}
}

func (d *Dual) SetToken(token string) error {
	return errors.Join(d.local.SetToken(token), d.mirror.SetToken(token))
}

func (d *Dual) Token() (string, bool) {
	if tok, ok := d.local.Token(); ok {
		return tok, true
	}
	return d.mirror.Token()
}

func (d *Dual) ClearToken() error {
	return errors.Join(d.local.ClearToken(), d.mirror.ClearToken())
}
