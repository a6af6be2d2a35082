package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterRecordCount(t *testing.T) {
	assert.Equal(t, 0, FilterRecord{}.Count())
	assert.True(t, FilterRecord{}.IsEmpty())

	f := FilterRecord{
		PropertyType:  Villa,
		Rooms:         IntPtr(3),
		MaxPrice:      IntPtr(2000000),
		LocationQuery: "Jvc",
	}
	assert.Equal(t, 4, f.Count())

	f.Rooms = IntPtr(0)
	assert.Equal(t, 4, f.Count(), "a zero count is still a populated field")
}

func TestFilterRecordValues(t *testing.T) {
	f := FilterRecord{
		Purpose:       PurposeForSale,
		PropertyType:  Villa,
		Rooms:         IntPtr(3),
		MaxPrice:      IntPtr(2000000),
		LocationQuery: "Jvc",
	}

	assert.Equal(t,
		"location_query=Jvc&max_price=2000000&property_type=villa&purpose=for-sale&rooms=3",
		f.Values().Encode())
}

func TestFilterRecordValidate(t *testing.T) {
	assert.NoError(t, FilterRecord{Purpose: PurposeForRent, PropertyType: HotelApartment}.Validate())
	assert.Error(t, FilterRecord{Purpose: "for-lease"}.Validate())
	assert.Error(t, FilterRecord{PropertyType: "castle"}.Validate())
	assert.Error(t, FilterRecord{MinArea: IntPtr(-1)}.Validate())

	inverted := FilterRecord{MinPrice: IntPtr(3000000), MaxPrice: IntPtr(2000000)}
	assert.NoError(t, inverted.Validate())
}

func TestFilterRecordClone(t *testing.T) {
	f := FilterRecord{Rooms: IntPtr(2)}
	c := f.Clone()
	*c.Rooms = 5
	assert.Equal(t, 2, *f.Rooms)
}
