package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInRange(t *testing.T) {
	assert.True(t, InRange(0, 0, 10))
	assert.True(t, InRange(0, 10, 10))
	assert.False(t, InRange(0, 11, 10))
	assert.False(t, InRange(math.MinInt64, math.Inf(-1), math.MaxInt64))
}

func TestPair(t *testing.T) {
	a, b := Pair([]string{"x", "y", "z"})
	assert.Equal(t, "x", a)
	assert.Equal(t, "y", b)

	a, b = Pair([]string{"x"})
	assert.Equal(t, "x", a)
	assert.Empty(t, b)

	a, b = Pair[[]string](nil)
	assert.Empty(t, a)
	assert.Empty(t, b)
}

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "colornames", PkgAlias("golang.org/x/image/colornames"))
	assert.Equal(t, "yaml.v3", PkgAlias("gopkg.in/yaml.v3"))
	assert.Empty(t, PkgAlias(""))
}
