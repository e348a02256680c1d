package singleinstance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "alice", sanitize("alice"))
	assert.Equal(t, "CORP_bob_smith", sanitize(`CORP\bob smith`))
	assert.Equal(t, "default", sanitize(""))
	assert.Equal(t, "a-b_c", sanitize("a-b_c"))
}

func TestDefaultName(t *testing.T) {
	name := DefaultName()
	assert.True(t, strings.HasPrefix(name, "winswitch-"))
	assert.NotContains(t, name, `\`)
	assert.NotContains(t, name, " ")
}
