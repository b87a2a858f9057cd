package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOscillatorValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		osc      Oscillator
		beat     float64
		expected float64
	}{
		{"sine peaks on the beat", NewOscillator(Sine, 1), 2, 1},
		{"sine trough half way", NewOscillator(Sine, 1), 2.5, 0},
		{"saw up", NewOscillator(SawtoothUp, 4), 1, 0.25},
		{"saw down", NewOscillator(SawtoothDown, 4), 1, 0.75},
		{"square high", NewOscillator(Square, 2), 0.5, 1},
		{"square low", NewOscillator(Square, 2), 1.5, 0},
		{"triangle", NewOscillator(Triangle, 1), 0.25, 0.5},
		{"negative beats wrap", NewOscillator(SawtoothUp, 1), -0.25, 0.75},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, testCase.expected, testCase.osc.Value(testCase.beat), 1e-9)
		})
	}
}

func TestNewOscillatorDefaultsPeriod(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, NewOscillator(Sine, 0).Beats)
	assert.Equal(t, 1.0, NewOscillator(Sine, -2).Beats)
}

func TestModulate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.8, Modulate(0.8, 0, 0))
	assert.InDelta(t, 0.0, Modulate(0.8, 0, 1), 1e-9)
	assert.InDelta(t, 0.4, Modulate(0.8, 0, 0.5), 1e-9)
	assert.InDelta(t, 0.8, Modulate(0.8, 1, 0.5), 1e-9)
	assert.InDelta(t, 0.0, Modulate(0.8, 0, 7), 1e-9)
}

func TestParseShape(t *testing.T) {
	t.Parallel()

	for s := range shapeNames {
		parsed, err := ParseShape(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	s, err := ParseShape("")
	require.NoError(t, err)
	assert.Equal(t, Sine, s)

	_, err = ParseShape("wobble")
	assert.Error(t, err)
}
