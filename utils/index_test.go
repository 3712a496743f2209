package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 20.79, Round2(20.790000000000003))
	assert.Equal(t, 10.0, Round2(10))
	assert.Equal(t, 0.1, Round2(0.10499))
	assert.Equal(t, 0.11, Round2(0.105))
	assert.Equal(t, -2.5, Round2(-2.499999999))
}

func TestCalculateGrowth(t *testing.T) {
	assert.Equal(t, 50.0, CalculateGrowth(150, 100))
	assert.Equal(t, -50.0, CalculateGrowth(50, 100))
	assert.Equal(t, 0.0, CalculateGrowth(0, 0))
	assert.Equal(t, 100.0, CalculateGrowth(10, 0), "growth from zero")
	assert.Equal(t, -100.0, CalculateGrowth(0, 100))
}

func TestPtr(t *testing.T) {
	v := Ptr(42)
	assert.Equal(t, 42, *v)

	s := Ptr("abc")
	assert.Equal(t, "abc", *s)
}
