package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	aliases := map[string]string{"+912222": "Alice"}
	assert.Equal(t, "Alice", DisplayName(aliases, "+912222"))
	assert.Equal(t, "+913333", DisplayName(aliases, "+913333"))
	assert.Equal(t, "+913333", DisplayName(nil, "+913333"))
}

func TestAliases_SaveAndPrecedence(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	name, err := e.aliases.DisplayNameFor(ctx, "+911111", "+912222")
	require.NoError(t, err)
	assert.Equal(t, "+912222", name)

	require.NoError(t, e.aliases.Save(ctx, "+911111", "+912222", "Alice"))

	name, err = e.aliases.DisplayNameFor(ctx, "+911111", "+912222")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	// other owners are unaffected
	name, err = e.aliases.DisplayNameFor(ctx, "+913333", "+912222")
	require.NoError(t, err)
	assert.Equal(t, "+912222", name)
}

func TestAliases_SaveOverwrites(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.aliases.Save(ctx, "+911111", "+912222", "Al"))
	require.NoError(t, e.aliases.Save(ctx, "+911111", "+912222", "  Alice  "))

	got, err := e.aliases.ListFor(ctx, "+911111")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"+912222": "Alice"}, got)
}

func TestAliases_BlankNameRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for _, name := range []string{"", "   ", "\t\n"} {
		assert.ErrorIs(t, e.aliases.Save(ctx, "+911111", "+912222", name), common.ErrInvalidAlias)
	}

	got, err := e.aliases.ListFor(ctx, "+911111")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAliases_BlankIDsRejected(t *testing.T) {
	e := newEnv(t)
	assert.ErrorIs(t, e.aliases.Save(context.Background(), "", "+912222", "x"), common.ErrInvalidInput)
	assert.ErrorIs(t, e.aliases.Save(context.Background(), "+911111", " ", "x"), common.ErrInvalidInput)
}

func TestAliases_DoNotCreateParties(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.aliases.Save(ctx, "+911111", "+919999", "Ghost"))

	_, err := e.directory.Get(ctx, "+919999")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAliases_WatchIsOwnerScoped(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	sub, err := e.aliases.Watch(ctx, "+911111")
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Empty(t, next(t, sub))

	require.NoError(t, e.aliases.Save(ctx, "+913333", "+912222", "NotMine"))
	require.NoError(t, e.aliases.Save(ctx, "+911111", "+912222", "Alice"))

	assert.Equal(t, map[string]string{"+912222": "Alice"}, next(t, sub))
}
