//go:build unit

package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFare(t *testing.T) {
	formatFare := func(fare json.Number, want string) func(t *testing.T) {
		return func(t *testing.T) {
			assert.Equal(t, want, FormatFare(fare))
		}
	}

	t.Run("integer", formatFare("4500", "₹4500"))
	t.Run("fraction kept as sent", formatFare("4499.50", "₹4499.50"))
	t.Run("empty", formatFare("", ""))
}

func TestNormalizeAirportCode(t *testing.T) {
	assert.Equal(t, "DEL", NormalizeAirportCode(" del "))
	assert.Equal(t, "", NormalizeAirportCode("   "))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
}
