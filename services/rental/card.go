package rental

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"bookrental/models"
)

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// cleanCardNumber strips the whitespace and dashes users type between
// digit groups.
func cleanCardNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DetectNetwork classifies a card number by its prefix. First match wins;
// the rules are mutually exclusive by construction.
func DetectNetwork(number string) models.CardNetwork {
	n := cleanCardNumber(number)
	switch {
	case strings.HasPrefix(n, "4"):
		return models.NetworkVisa
	case len(n) >= 2 && n[0] == '5' && n[1] >= '1' && n[1] <= '5':
		return models.NetworkMastercard
	case strings.HasPrefix(n, "34") || strings.HasPrefix(n, "37"):
		return models.NetworkAmex
	case strings.HasPrefix(n, "6011") || strings.HasPrefix(n, "65"):
		return models.NetworkDiscover
	default:
		return models.NetworkUnknown
	}
}

// luhnChecksum doubles every second digit from the rightmost, digit-summing
// anything over 9. A number is well-formed iff the total is 0 mod 10.
func luhnChecksum(number string) int {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum % 10
}

// ValidateCardNumber checks that the cleaned number is 13-19 digits and
// passes the Luhn checksum. Pure and deterministic.
func ValidateCardNumber(number string) *FieldError {
	n := cleanCardNumber(number)
	if !isDigits(n) || len(n) < 13 || len(n) > 19 {
		return newFieldError(FieldCardNumber, KindInvalidCardNumber, "Invalid card number")
	}
	if luhnChecksum(n) != 0 {
		return newFieldError(FieldCardNumber, KindInvalidCardNumber, "Invalid card number")
	}
	return nil
}

// ValidateExpiry checks an "MM/YY" expiry against asOf. Two-digit years are
// interpreted as 2000+YY; a card is expired when its (year, month) pair is
// strictly before asOf's.
func ValidateExpiry(expiry string, asOf time.Time) *FieldError {
	if !expiryPattern.MatchString(expiry) {
		return newFieldError(FieldExpiryDate, KindBadExpiryFormat, "Expiry must be MM/YY")
	}
	month, _ := strconv.Atoi(expiry[:2])
	year, _ := strconv.Atoi(expiry[3:])
	if month < 1 || month > 12 {
		return newFieldError(FieldExpiryDate, KindInvalidMonth, "Invalid expiry month")
	}
	year += 2000
	if year < asOf.Year() || (year == asOf.Year() && month < int(asOf.Month())) {
		return newFieldError(FieldExpiryDate, KindCardExpired, "Card has expired")
	}
	return nil
}

// ValidateCVV checks length and digits: amex cards carry a 4-digit code,
// every other network (unknown included) a 3-digit one.
func ValidateCVV(cvv string, network models.CardNetwork) *FieldError {
	want := 3
	if network == models.NetworkAmex {
		want = 4
	}
	if !isDigits(cvv) || len(cvv) != want {
		return newFieldError(FieldCVV, KindInvalidCVV, "Invalid CVV")
	}
	return nil
}
