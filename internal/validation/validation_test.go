package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	valid := []string{"bob", "alice_99", "X_y_Z", strings.Repeat("a", 50)}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), u)
	}

	invalid := []string{"", "ab", strings.Repeat("a", 51), "has space", "dash-ed", "ünicode", "semi;colon"}
	for _, u := range invalid {
		assert.Error(t, ValidateUsername(u), u)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.co", "reader+tag@example.org", "under_score@mail.example.com"}
	for _, e := range valid {
		assert.NoError(t, ValidateEmail(e), e)
	}

	invalid := []string{"", "plainaddress", "@missinglocal.com", "spaces in@addr.com", "Display Name <a@b.co>"}
	for _, e := range invalid {
		assert.Error(t, ValidateEmail(e), e)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("secret"))
	assert.NoError(t, ValidatePassword("a much longer passphrase"))

	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("five5"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}
