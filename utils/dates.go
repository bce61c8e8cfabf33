package utils

import "bookrental/models"

// FormatDisplayDate renders a date in the long form shown to renters,
// e.g. "July 15, 2024". Returns an empty string for an unset date.
func FormatDisplayDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("January 2, 2006")
}
