package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPublicID(t *testing.T) {
	id, err := extractPublicID("https://res.cloudinary.com/demo/image/upload/v1234567890/patients/abc123.jpg")
	require.NoError(t, err)
	assert.Equal(t, "patients/abc123", id)
}

func TestExtractPublicIDWithoutVersionSegment(t *testing.T) {
	id, err := extractPublicID("https://res.cloudinary.com/demo/image/upload/education/guide.png")
	require.NoError(t, err)
	assert.Equal(t, "education/guide", id)
}

func TestExtractPublicIDRejectsNonUploadURL(t *testing.T) {
	_, err := extractPublicID("https://res.cloudinary.com/x")
	assert.Error(t, err)
}
