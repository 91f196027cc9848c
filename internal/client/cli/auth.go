package cli

import (
	"context"
	"errors"
	"fmt"
)

// getSimpleText and getCode are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getCode = GetCode

var errAlreadyLoggedIn = errors.New("already logged in, log out first")

// Login asks for a phone number, requests a one-time code for it and
// completes the login with the code the user types. On success the live
// alias map is subscribed to.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}

	phone, err := getSimpleText(a.reader, "Enter phone number", a.out)
	if err != nil {
		return err
	}

	cctx, cancel := a.call(ctx)
	challenge, err := a.api.StartLogin(cctx, phone)
	cancel()
	if err != nil {
		return fmt.Errorf("login refused: %w", err)
	}

	code, err := getCode(a.out)
	if err != nil {
		return err
	}

	cctx, cancel = a.call(ctx)
	self, err := a.api.CompleteLogin(cctx, challenge, code)
	cancel()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	sub, err := a.api.WatchAliases(ctx)
	if err != nil {
		a.api.Logout()
		return err
	}

	a.mu.Lock()
	a.self = self
	a.aliasSub = sub
	a.mu.Unlock()

	go a.trackAliases(sub)

	a.setMode(ModeOnline)
	a.printf("Logged in as %s\n", self)
	return nil
}

// Logout closes every subscription and forgets the access token.
func (a *App) Logout(ctx context.Context) error {
	_ = a.CloseConversation(ctx)

	a.mu.Lock()
	sub := a.aliasSub
	a.aliasSub = nil
	a.self = ""
	a.aliases = map[string]string{}
	a.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
	a.api.Logout()
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	cctx, cancel := a.call(ctx)
	defer cancel()

	if err := a.api.Ping(cctx); err != nil {
		a.setMode(ModeOffline)
		return err
	}
	a.setMode(ModeOnline)
	a.printf("pong\n")
	return nil
}
