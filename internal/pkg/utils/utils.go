package utils

import (
	"encoding/json"
	"strings"
)

const FareCurrencySymbol = "₹"

// FormatFare prefixes the fare with the currency symbol and keeps the digits
// exactly as the backend sent them.
// Example: "4500" -> "₹4500", "4499.5" -> "₹4499.5"
func FormatFare(fare json.Number) string {
	if fare == "" {
		return ""
	}

	return FareCurrencySymbol + fare.String()
}

// NormalizeAirportCode trims and upper-cases an airport code.
// Example: " del " -> "DEL"
func NormalizeAirportCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
