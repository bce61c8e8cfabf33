package rental

import (
	"testing"
	"time"

	"bookrental/models"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) models.Date {
	return models.NewDate(y, m, d)
}

func TestValidatePeriod(t *testing.T) {
	asOf := date(2024, time.June, 1)

	t.Run("partial input passes", func(t *testing.T) {
		assert.Nil(t, ValidatePeriod(models.RentalPeriod{}, asOf))
		assert.Nil(t, ValidatePeriod(models.RentalPeriod{CollectionDate: date(2024, time.June, 10)}, asOf))
		assert.Nil(t, ValidatePeriod(models.RentalPeriod{ReturnDate: date(2024, time.June, 10)}, asOf))
	})

	t.Run("return strictly after collection", func(t *testing.T) {
		assert.Nil(t, ValidatePeriod(models.RentalPeriod{
			CollectionDate: date(2024, time.June, 10),
			ReturnDate:     date(2024, time.June, 11),
		}, asOf))

		err := ValidatePeriod(models.RentalPeriod{
			CollectionDate: date(2024, time.June, 10),
			ReturnDate:     date(2024, time.June, 10),
		}, asOf)
		if assert.NotNil(t, err, "equal dates are not a valid range") {
			assert.Equal(t, KindReturnBeforeCollection, err.Kind)
			assert.Equal(t, FieldReturnDate, err.Field)
		}

		err = ValidatePeriod(models.RentalPeriod{
			CollectionDate: date(2024, time.June, 10),
			ReturnDate:     date(2024, time.June, 5),
		}, asOf)
		if assert.NotNil(t, err) {
			assert.Equal(t, KindReturnBeforeCollection, err.Kind)
		}
	})

	t.Run("no past return dates", func(t *testing.T) {
		err := ValidatePeriod(models.RentalPeriod{
			CollectionDate: date(2024, time.May, 10),
			ReturnDate:     date(2024, time.May, 20),
		}, asOf)
		if assert.NotNil(t, err) {
			assert.Equal(t, KindReturnInPast, err.Kind)
		}

		// Returning today is fine.
		assert.Nil(t, ValidatePeriod(models.RentalPeriod{
			CollectionDate: date(2024, time.May, 20),
			ReturnDate:     asOf,
		}, asOf))
	})
}

func TestDefaultReturnDate(t *testing.T) {
	collection := date(2024, time.June, 20)

	assert.Equal(t, date(2024, time.July, 4), DefaultReturnDate(collection, 14))
	assert.Equal(t, date(2024, time.June, 27), DefaultReturnDate(collection, 7))
	assert.Equal(t, date(2024, time.July, 4), DefaultReturnDate(collection, 0), "zero falls back to two weeks")
}
