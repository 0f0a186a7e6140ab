package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopfront/internal/domain"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1000", 1000, true},
		{" 12.5 ", 12.5, true},
		{"-1", -1, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, c := range cases {
		got, ok := Number(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
	assert.Equal(t, 0.0, NumberOrZero("x"))
}

func TestSIDAndMode(t *testing.T) {
	_, ok := SID("0b6f3c2e-8d7a-4c1e-9f2b-3a4d5e6f7a8b")
	assert.True(t, ok)
	_, ok = SID("../../etc")
	assert.False(t, ok)

	m, ok := Mode(" GRID ")
	assert.True(t, ok)
	assert.Equal(t, domain.ViewModeGrid, m)
	_, ok = Mode("table")
	assert.False(t, ok)
}
