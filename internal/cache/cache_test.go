package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

func TestKey(t *testing.T) {
	f := models.FilterRecord{Purpose: models.PurposeForSale, Rooms: models.IntPtr(2)}

	assert.Equal(t, "limit=10&page=1&purpose=for-sale&rooms=2", Key(f, 1, 10))
	assert.NotEqual(t, Key(f, 1, 10), Key(f, 2, 10))
	assert.NotEqual(t, Key(f, 1, 10), Key(f, 1, 20))
}

func TestKey_IgnoresFieldOrderAndEmptyFields(t *testing.T) {
	a := models.FilterRecord{LocationQuery: "Dubai Marina", PropertyType: models.Villa}
	b := models.FilterRecord{PropertyType: models.Villa, LocationQuery: "Dubai Marina", Keywords: ""}

	assert.Equal(t, Key(a, 1, 10), Key(b, 1, 10))
}

func TestUniqueListings(t *testing.T) {
	got := uniqueListings([]models.Listing{{ID: "a", Title: "first"}, {ID: "b"}, {ID: "a", Title: "dup"}})

	assert.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "b", got[1].ID)
}
