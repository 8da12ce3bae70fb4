package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedLookup(t *testing.T) {
	assert.Equal(t, "User not found.", T("en", KeyUserNotFound))
	assert.Equal(t, "यूज़र नहीं मिला।", T("hi", KeyUserNotFound))
}

func TestFallbackToEnglish(t *testing.T) {
	assert.Equal(t, T("en", KeyInvalidOTP), T("fr", KeyInvalidOTP))
	assert.Equal(t, T("en", KeyInvalidOTP), T("", KeyInvalidOTP))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hi", Normalize("hi"))
	assert.Equal(t, "en", Normalize(""))
	assert.Equal(t, "en", Normalize("de"))
}
