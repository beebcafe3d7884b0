package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pottyspotty/internal/models"
	"pottyspotty/internal/store"
)

func TestRecorderCountsAndForwards(t *testing.T) {
	rec := Wrap(store.NewMemoryStore(models.Restroom{
		Name:    "Starbucks",
		Address: models.Address{Street: "123 Main St", City: "Nashville", State: "TN"},
	}))

	all, err := rec.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	ok, err := rec.Exists(context.Background(), "starbucks", "123 main st", "nashville")
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, 1, rec.Calls("ListAll"))
	require.Equal(t, 1, rec.Calls("Exists"))
	require.Equal(t, 0, rec.Calls("Insert"))
}

func TestRecorderInjectedError(t *testing.T) {
	rec := Wrap(store.NewMemoryStore())
	rec.FailWith(errors.New("boom"))

	_, err := rec.ListAll(context.Background())
	require.EqualError(t, err, "boom")
	require.EqualError(t, rec.Ping(context.Background()), "boom")

	_, err = rec.Insert(context.Background(), &models.Restroom{
		Name:    "A",
		Address: models.Address{Street: "A St", City: "Nashville", State: "TN"},
	})
	require.EqualError(t, err, "boom")
	require.Equal(t, 1, rec.Calls("ListAll"))
	require.Equal(t, 1, rec.Calls("Insert"))
}
