package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunFacts(t *testing.T) {
	assert.Equal(t, 20, FunFactCount())

	f := NewFunFacts(func(n int) int { return 0 })
	assert.Equal(t, FunFactPrefix+funFacts[0], f.Random())

	f = NewFunFacts(func(n int) int { return n - 1 })
	assert.Equal(t, FunFactPrefix+funFacts[19], f.Random())
}

func TestFunFacts_DefaultSource(t *testing.T) {
	f := NewFunFacts(nil)
	for i := 0; i < 50; i++ {
		fact := f.Random()
		assert.True(t, strings.HasPrefix(fact, "🧙 Do you know? "))
		assert.Greater(t, len(fact), len(FunFactPrefix))
	}
}
