package state

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/five82/vitrine/internal/result"
	"github.com/five82/vitrine/internal/shop"
)

// Messages shown after successful auth actions.
const (
	MessageAccountCreated = "Account created"
	MessageLoggedIn       = "Logged in"
	MessageLoggedOut      = "Logged out"
)

// AuthStatus is the auth flow's state machine position.
type AuthStatus int

const (
	AuthIdle AuthStatus = iota
	AuthLoading
	AuthSuccess
	AuthError
)

func (s AuthStatus) String() string {
	switch s {
	case AuthLoading:
		return "loading"
	case AuthSuccess:
		return "success"
	case AuthError:
		return "error"
	default:
		return "idle"
	}
}

// AuthGateway is what the auth coordinator needs from shop.Gateway.
type AuthGateway interface {
	SignUp(ctx context.Context, in shop.SignUpInput) result.Result[shop.Customer]
	Login(ctx context.Context, email, password string) result.Result[struct{}]
	Logout(ctx context.Context) result.Result[struct{}]
	Customer(ctx context.Context) result.Result[*shop.Customer]
}

// AuthState is the account view state. Message carries the success text or
// the error text depending on Status.
type AuthState struct {
	Status   AuthStatus
	Message  string
	Customer *shop.Customer
}

// SignedIn reports whether a customer is loaded.
func (s AuthState) SignedIn() bool {
	return s.Customer != nil
}

func cloneAuth(s AuthState) AuthState {
	s.Customer = clonePtr(s.Customer)
	return s
}

// Auth coordinates sign-up, login, logout and the current customer.
type Auth struct {
	store[AuthState]

	gw  AuthGateway
	log zerolog.Logger
}

// NewAuth builds an Auth over gw.
func NewAuth(gw AuthGateway, log zerolog.Logger) *Auth {
	a := &Auth{gw: gw, log: log.With().Str("component", "auth").Logger()}
	a.init(AuthState{}, cloneAuth)
	return a
}

// Snapshot returns a copy of the current state.
func (a *Auth) Snapshot() AuthState {
	return a.snapshot()
}

func (a *Auth) begin() {
	a.update(func(s *AuthState) {
		s.Status = AuthLoading
		s.Message = ""
	})
}

func (a *Auth) fail(action, message string) {
	a.update(func(s *AuthState) {
		s.Status = AuthError
		s.Message = message
	})
	a.log.Warn().Str("action", action).Str("error", message).Msg("auth action failed")
}

// SignUp registers a customer. It does not sign them in.
func (a *Auth) SignUp(ctx context.Context, in shop.SignUpInput) {
	a.begin()
	a.spawn(func() {
		res := a.gw.SignUp(ctx, in)
		if !res.Ok() {
			a.fail("sign up", res.Message())
			return
		}
		a.update(func(s *AuthState) {
			s.Status = AuthSuccess
			s.Message = MessageAccountCreated
		})
	})
}

// Login signs in and then loads the customer. A failed customer load after a
// successful login leaves Customer nil but still reports success.
func (a *Auth) Login(ctx context.Context, email, password string) {
	a.begin()
	a.spawn(func() {
		res := a.gw.Login(ctx, email, password)
		if !res.Ok() {
			a.fail("login", res.Message())
			return
		}
		cust := a.gw.Customer(ctx)
		if !cust.Ok() {
			a.log.Warn().Str("error", cust.Message()).Msg("customer load after login failed")
		}
		a.update(func(s *AuthState) {
			s.Status = AuthSuccess
			s.Message = MessageLoggedIn
			s.Customer = clonePtr(cust.Value())
		})
	})
}

// Logout revokes the session and forgets the customer.
func (a *Auth) Logout(ctx context.Context) {
	a.begin()
	a.spawn(func() {
		res := a.gw.Logout(ctx)
		if !res.Ok() {
			a.fail("logout", res.Message())
			return
		}
		a.update(func(s *AuthState) {
			s.Status = AuthSuccess
			s.Message = MessageLoggedOut
			s.Customer = nil
		})
	})
}

// LoadCustomer refreshes Customer from the stored token. It does not move
// the status machine unless the fetch fails.
func (a *Auth) LoadCustomer(ctx context.Context) {
	a.spawn(func() {
		res := a.gw.Customer(ctx)
		if !res.Ok() {
			a.fail("load customer", res.Message())
			return
		}
		a.update(func(s *AuthState) {
			s.Customer = clonePtr(res.Value())
		})
	})
}

// Reset returns the status to idle and clears the message.
func (a *Auth) Reset() {
	a.update(func(s *AuthState) {
		s.Status = AuthIdle
		s.Message = ""
	})
}
