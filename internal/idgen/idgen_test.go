package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	first, second := New(), New()
	assert.Len(t, first, 12)
	assert.NotEqual(t, first, second)

	prev := NewFunc
	NewFunc = func() string { return "fixed" }
	defer func() { NewFunc = prev }()
	assert.Equal(t, "fixed", New())
}
