package maintenance

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chopstick/internal/ladle"
	"chopstick/internal/testutil/testlog"
)

func TestCleanDeletesOrphans(t *testing.T) {
	testlog.Start(t)
	remote := newFakeRemote()
	flour := remote.seedIngredient("flour", ladle.Classifications{Gluten: true})
	remote.seedIngredient("saffron", ladle.Classifications{})
	remote.seedLabel("forgotten")

	dough := remote.seedRecipe(ladle.RecipeDraft{Name: "dough"})
	remote.seedRequirement(dough, flour, "300g")
	remote.seedTag(dough, "base")

	rep, err := Clean(context.Background(), remote, Options{Workers: 2})
	require.NoError(t, err)
	require.Empty(t, rep.Warnings())

	require.NotNil(t, remote.ingredientByName("flour"))
	require.Nil(t, remote.ingredientByName("saffron"))
	require.NotNil(t, remote.labelByName("base"))
	require.Nil(t, remote.labelByName("forgotten"))
}

func TestCleanKeepsUninspectableEntities(t *testing.T) {
	testlog.Start(t)
	remote := newFakeRemote()
	opaque := remote.seedIngredient("opaque", ladle.Classifications{})
	remote.seedIngredient("stale", ladle.Classifications{})
	remote.failIngredientGet[opaque] = errors.New("boom")

	rep, err := Clean(context.Background(), remote, Options{})
	require.NoError(t, err)

	// The uninspectable ingredient survives the run; the plain orphan goes.
	require.NotNil(t, remote.ingredientByName("opaque"))
	require.Nil(t, remote.ingredientByName("stale"))
	require.Contains(t, strings.Join(rep.Warnings(), "\n"), "opaque")
}

func TestCleanEmptyRemote(t *testing.T) {
	testlog.Start(t)
	remote := newFakeRemote()
	rep, err := Clean(context.Background(), remote, Options{})
	require.NoError(t, err)
	require.Empty(t, rep.Warnings())
}
