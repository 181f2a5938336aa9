package listing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PawMart-Adoption/service-listing/internal/domain"
)

func newTestListing(t *testing.T) *Listing {
	t.Helper()
	l, err := NewListing(
		uuid.New(), "Milo", "Friendly orange tabby",
		12050, false, "cat", "tabby",
		[]Image{{URL: "https://media.test/a.jpg", StorageID: "sid-a"}},
		[]string{"none"},
	)
	require.NoError(t, err)
	return l
}

func TestNewListing_Valid(t *testing.T) {
	l := newTestListing(t)

	assert.NotEqual(t, uuid.Nil, l.ID())
	assert.Equal(t, "Milo", l.Name())
	assert.Equal(t, int64(12050), l.PriceCents())
	assert.False(t, l.IsAdopted())
	assert.Equal(t, int64(1), l.Version())
	assert.Equal(t, l.CreatedAt(), l.UpdatedAt())
}

func TestNewListing_Invalid(t *testing.T) {
	images := []Image{{URL: "u", StorageID: "s"}}

	_, err := NewListing(uuid.Nil, "Milo", "d", 0, true, "cat", "tabby", images, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = NewListing(uuid.New(), "", "d", 0, true, "cat", "tabby", images, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = NewListing(uuid.New(), "Milo", "d", 0, true, "cat", "tabby", nil, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestIsOwnedBy(t *testing.T) {
	l := newTestListing(t)

	assert.True(t, l.IsOwnedBy(l.OwnerID()))
	assert.False(t, l.IsOwnedBy(uuid.New()))
}

func TestUpdateDetails_LeavesOwnerAndAdoptionAlone(t *testing.T) {
	l := newTestListing(t)
	ownerID := l.OwnerID()

	l.UpdateDetails("Miso", "new description", 8000, false, "cat", "calico", nil)

	assert.Equal(t, "Miso", l.Name())
	assert.Equal(t, int64(8000), l.PriceCents())
	assert.Equal(t, ownerID, l.OwnerID())
	assert.False(t, l.IsAdopted())
	assert.Equal(t, int64(2), l.Version())
}

func TestReplaceImages_IgnoresEmptyList(t *testing.T) {
	l := newTestListing(t)

	l.ReplaceImages(nil)

	require.Len(t, l.Images(), 1)
	assert.Equal(t, "sid-a", l.Images()[0].StorageID)
	assert.Equal(t, int64(1), l.Version())
}

func TestReplaceImages_SwapsList(t *testing.T) {
	l := newTestListing(t)

	l.ReplaceImages([]Image{
		{URL: "u1", StorageID: "sid-1"},
		{URL: "u2", StorageID: "sid-2"},
	})

	require.Len(t, l.Images(), 2)
	assert.Equal(t, int64(2), l.Version())
}

func TestMarkAdopted_Monotonic(t *testing.T) {
	l := newTestListing(t)

	l.MarkAdopted()
	assert.True(t, l.IsAdopted())

	// Repeated calls are accepted and the flag never clears.
	l.MarkAdopted()
	assert.True(t, l.IsAdopted())
}
