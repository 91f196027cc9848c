package cli

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dmitrijs2005/securechat/internal/api"
	"github.com/dmitrijs2005/securechat/internal/client/client"
)

var errNotLoggedIn = errors.New("not logged in")

// trackAliases keeps a.aliases equal to the latest snapshot until sub ends.
func (a *App) trackAliases(sub *client.Subscription[map[string]string]) {
	for aliases := range sub.C {
		a.mu.Lock()
		if a.aliasSub == sub {
			a.aliases = aliases
		}
		a.mu.Unlock()
	}
	if err := sub.Err(); err != nil {
		a.printf("Contact updates stopped: %v\n", err)
	}
}

// displayName shows the owner's alias for id when there is one.
func displayName(aliases map[string]string, id string) string {
	if name, ok := aliases[id]; ok {
		return name
	}
	return id
}

// Users prints the directory, narrowed to term when given.
func (a *App) Users(ctx context.Context, term string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	sub, err := a.api.WatchDirectory(ctx, term)
	if err != nil {
		return err
	}
	defer sub.Close()

	var entries []api.RosterEntry
	select {
	case snap, ok := <-sub.C:
		if !ok {
			if err := sub.Err(); err != nil {
				return err
			}
			return client.ErrUnavailable
		}
		entries = snap
	case <-time.After(a.config.RequestTimeout):
		return client.ErrUnavailable
	}

	if len(entries) == 0 {
		a.printf("No users found\n")
		return nil
	}
	for _, e := range entries {
		seen := "never"
		if e.Party.LastSeen != nil {
			seen = e.Party.LastSeen.Local().Format("2006-01-02 15:04")
		}
		a.printf("%-24s %-16s last seen %s\n", e.DisplayName, e.Party.CanonicalID, seen)
	}
	return nil
}

// Contacts prints the caller's aliases.
func (a *App) Contacts(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	a.mu.Lock()
	ids := make([]string, 0, len(a.aliases))
	for id := range a.aliases {
		ids = append(ids, id)
	}
	aliases := a.aliases
	a.mu.Unlock()

	if len(ids) == 0 {
		a.printf("No contacts saved\n")
		return nil
	}
	sort.Strings(ids)
	for _, id := range ids {
		a.printf("%-24s %s\n", aliases[id], id)
	}
	return nil
}
