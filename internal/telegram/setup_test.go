package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12345678...", tokenPrefix("123456789:AAfullToken"))
	// Tokens shorter than the prefix are logged as-is.
	assert.Equal(t, "abc...", tokenPrefix("abc"))
	assert.Equal(t, "...", tokenPrefix(""))
}
