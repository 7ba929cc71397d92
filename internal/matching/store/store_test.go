package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/euer/internal/matching"
	"github.com/MrJamesThe3rd/euer/internal/matching/store"
)

func TestStore_FindMatch(t *testing.T) {
	ctx := context.Background()
	s := store.New()

	require.NoError(t, s.CreateMapping(ctx, "amazon", "office_supplies"))
	require.NoError(t, s.CreateMapping(ctx, "amazon web services", "software"))

	type testCase struct {
		name         string
		counterparty string
		want         string
	}

	tests := []testCase{
		{name: "LongestWins", counterparty: "amazon web services emea", want: "software"},
		{name: "ShortPattern", counterparty: "amazon eu s.a r.l.", want: "office_supplies"},
		{name: "NoMatch", counterparty: "telekom", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindMatch(ctx, tt.counterparty)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_CreateReplaces(t *testing.T) {
	ctx := context.Background()
	s := store.New()

	require.NoError(t, s.CreateMapping(ctx, "jetbrains", "other_expense"))
	require.NoError(t, s.CreateMapping(ctx, "jetbrains", "software"))

	got, err := s.FindMatch(ctx, "jetbrains s.r.o.")
	require.NoError(t, err)
	assert.Equal(t, "software", got)

	list, err := s.ListMappings(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.Error(t, s.CreateMapping(ctx, "", "software"))
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := store.New()

	require.NoError(t, s.CreateMapping(ctx, "b", "x"))
	require.NoError(t, s.CreateMapping(ctx, "a", "y"))

	list, err := s.ListMappings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Pattern)

	require.NoError(t, s.DeleteMapping(ctx, "a"))
	assert.ErrorIs(t, s.DeleteMapping(ctx, "a"), matching.ErrNotFound)
}
