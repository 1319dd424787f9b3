package dataset

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(
		Record{"id": "1", "title": "Beef Salad", "marketing_description": "Crunchy", "recipe_cuisine": "asian"},
		Record{"id": "2", "title": "Sponge Cake", "marketing_description": "Sweet", "recipe_cuisine": "british"},
		Record{"id": "3", "title": "Pie", "marketing_description": "Hearty", "recipe_cuisine": "british"},
	)
	require.NoError(t, err)
	return store
}

func TestNewStore(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, 3, store.Len())
}

func TestNewStoreMissingID(t *testing.T) {
	_, err := NewStore(Record{"title": "No ID"})
	assert.True(t, errors.Is(err, ErrMissingID))
}

func TestNewStoreDuplicateIDKeepsPosition(t *testing.T) {
	store, err := NewStore(
		Record{"id": "a", "recipe_cuisine": "x", "title": "first"},
		Record{"id": "b", "recipe_cuisine": "x", "title": "second"},
		Record{"id": "a", "recipe_cuisine": "x", "title": "replaced"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	matches := store.FilterByField("recipe_cuisine", "x")
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].ID())
	assert.Equal(t, "replaced", matches[0]["title"])
}

func TestGet(t *testing.T) {
	store := newTestStore(t)

	record, err := store.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "2", record.ID())
	assert.Equal(t, "Sponge Cake", record["title"])

	_, err = store.Get("1000")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetReturnsCopy(t *testing.T) {
	store := newTestStore(t)

	record, err := store.Get("1")
	require.NoError(t, err)
	record["title"] = "mutated"

	again, err := store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Beef Salad", again["title"])
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)

	updated, err := store.Update("2", []FieldChange{
		{Field: "title", Value: "Marmalade Cake"},
		{Field: "marketing_description", Value: "A modern take on sponge cakes"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Marmalade Cake", updated["title"])
	assert.Equal(t, "A modern take on sponge cakes", updated["marketing_description"])
	assert.Equal(t, "british", updated["recipe_cuisine"])

	got, err := store.Get("2")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateIdempotent(t *testing.T) {
	store := newTestStore(t)
	changes := []FieldChange{{Field: "title", Value: "Peking Duck"}}

	first, err := store.Update("1", changes)
	require.NoError(t, err)
	second, err := store.Update("1", changes)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUpdateNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Update("1000", []FieldChange{{Field: "title", Value: "x"}})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Update("1", []FieldChange{{Field: "id", Value: "2"}})
	assert.True(t, errors.Is(err, ErrIDImmutable))

	record, err := store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "1", record.ID())
}

func TestUpdateUnknownFieldAppliesNothing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Update("1", []FieldChange{
		{Field: "title", Value: "Changed"},
		{Field: "random", Value: "xxxx"},
	})

	var fieldErr *FieldNotFoundError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "random", fieldErr.Field)

	record, err := store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Beef Salad", record["title"])
	assert.NotContains(t, record, "random")
}

func TestUpdateFirstInvalidFieldWins(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Update("1", []FieldChange{
		{Field: "random", Value: "xxxx"},
		{Field: "id", Value: "9"},
	})
	var fieldErr *FieldNotFoundError
	assert.True(t, errors.As(err, &fieldErr))

	_, err = store.Update("1", []FieldChange{
		{Field: "id", Value: "9"},
		{Field: "random", Value: "xxxx"},
	})
	assert.True(t, errors.Is(err, ErrIDImmutable))
}

func TestFilterByField(t *testing.T) {
	store := newTestStore(t)

	british := store.FilterByField("recipe_cuisine", "british")
	require.Len(t, british, 2)
	assert.Equal(t, "2", british[0].ID())
	assert.Equal(t, "3", british[1].ID())

	assert.Empty(t, store.FilterByField("recipe_cuisine", "British"))
	assert.Empty(t, store.FilterByField("recipe_cuisine", "brit"))
	assert.NotNil(t, store.FilterByField("recipe_cuisine", "klingon"))
}

func TestFilterByFieldIgnoresNonStringValues(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Update("3", []FieldChange{{Field: "recipe_cuisine", Value: 42}})
	require.NoError(t, err)

	british := store.FilterByField("recipe_cuisine", "british")
	require.Len(t, british, 1)
	assert.Equal(t, "2", british[0].ID())
}

func TestProject(t *testing.T) {
	record := Record{"id": "1", "title": "Pie", "marketing_description": "Hearty", "recipe_cuisine": "british"}

	projected := record.Project("id", "title", "marketing_description", "missing")
	assert.Equal(t, Record{"id": "1", "title": "Pie", "marketing_description": "Hearty"}, projected)
}
