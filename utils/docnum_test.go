package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentNumber(t *testing.T) {
	day := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "INV-20260301-042", DocumentNumber("INV", day, 42))
	assert.Equal(t, "QUO-20260301-007", DocumentNumber("QUO", day, 7))
}

func TestNewDocumentNumberShape(t *testing.T) {
	re := regexp.MustCompile(`^EST-\d{8}-\d{3}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, re, NewDocumentNumber("EST"))
	}
}

func TestLogoFilename(t *testing.T) {
	name, err := LogoFilename("u1", "Company Logo.PNG")
	require.NoError(t, err)
	assert.Regexp(t, `^u1/logo-\d+\.png$`, name)

	_, err = LogoFilename("u1", "logo.svg")
	assert.Error(t, err)
	_, err = LogoFilename("u1", "logo")
	assert.Error(t, err)
}
