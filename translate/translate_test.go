package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestSetLanguage(t *testing.T) {
	assert := assert.New(t)

	defer SetLanguage(language.AmericanEnglish)

	SetLanguage(language.AmericanEnglish)
	assert.Equal("tape 1,234", From("tape %d", 1234))

	SetLanguage(language.German)
	assert.Equal("tape 1.234", From("tape %d", 1234))
}
