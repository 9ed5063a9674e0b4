package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@x.com", "first.last@example.co.uk", "a+tag@domain.io"}
	for _, email := range valid {
		require.True(t, IsValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{"", "   ", "plain", "user@", "@x.com", "user@x", "user x@x.com"}
	for _, email := range invalid {
		require.False(t, IsValidEmail(email), "expected %q to be invalid", email)
	}
}
