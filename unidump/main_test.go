package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robmorgan/lumen/config"
	"github.com/robmorgan/lumen/fixture"
)

func TestDescribe(t *testing.T) {
	t.Parallel()

	fg, err := fixture.NewGroupFromPatch([]config.PatchedLayer{
		{Name: "house", Layer: 0, Universe: 1, Address: 4, Profile: "dimmer"},
		{Name: "strip", Layer: 0, Universe: 1, Address: 1, Profile: "rgb"},
		{Name: "elsewhere", Layer: 0, Universe: 2, Address: 1, Profile: "dimmer"},
	}, nil)
	require.NoError(t, err)

	data := make([]byte, 512)
	data[0], data[3] = 255, 128

	lines := describe(fg, 1, data)
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "strip")
	assert.Contains(t, lines[0], "255")
	assert.Contains(t, lines[3], "house")
	assert.Contains(t, lines[3], "128")

	assert.Empty(t, describe(fg, 3, data))
}
