package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	p, err := Lookup("shehds-par")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Footprint())
	assert.Equal(t, 1, p.Channels[ChannelTypeIntensity])

	_, err = Lookup("moving-head")
	assert.Error(t, err)

	assert.Equal(t, []string{"dimmer", "rgb", "shehds-par"}, Keys())
}
