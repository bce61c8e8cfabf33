package rental

import "bookrental/models"

// ValidatePeriod checks a rental period against asOf. A partially entered
// period (either date unset) is legal mid-entry and passes. When both dates
// are set, the return date must be strictly after the collection date and
// must not lie in the past.
func ValidatePeriod(period models.RentalPeriod, asOf models.Date) *FieldError {
	if period.CollectionDate.IsZero() || period.ReturnDate.IsZero() {
		return nil
	}
	if !period.ReturnDate.After(period.CollectionDate) {
		return newFieldError(FieldReturnDate, KindReturnBeforeCollection,
			"Return date must be after collection date")
	}
	if period.ReturnDate.Before(asOf) {
		return newFieldError(FieldReturnDate, KindReturnInPast,
			"Return date is in the past")
	}
	return nil
}

// DefaultReturnDate suggests a return date the given number of days after
// collection. Days at or below zero fall back to the standard two weeks.
func DefaultReturnDate(collection models.Date, days int) models.Date {
	if days <= 0 {
		days = 14
	}
	return collection.AddDays(days)
}
