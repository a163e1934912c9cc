package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"demo@curerise.com",
		"first.last+tag@sub.example.co.in",
		"UPPER@EXAMPLE.ORG",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), email)
	}

	invalid := []string{
		"not-an-email",
		"missing@tld",
		"@example.com",
		"user@.com",
		"user@example.c",
		"",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), email)
	}
}

func TestMissingFields(t *testing.T) {
	err := MissingFields(
		Field{Name: "email", Value: "demo@curerise.com"},
		Field{Name: "password", Value: "secret"},
	)
	assert.NoError(t, err)

	err = MissingFields(
		Field{Name: "email", Value: ""},
		Field{Name: "password", Value: "secret"},
		Field{Name: "name", Value: "   "},
	)
	assert.EqualError(t, err, "Missing required fields: email, name")
}
