package dctopo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJupiterRejectsFewerSpineThanAggregationBlocks(t *testing.T) {
	var ce *ConfigurationError

	_, err := CreateJupiter(10, 64, nil)
	require.Error(t, err)
	require.ErrorAs(t, err, &ce)

	_, err = CreateJupiter(4, -1, nil)
	require.Error(t, err)
	require.ErrorAs(t, err, &ce)
}

func TestJupiterDefaults(t *testing.T) {
	jp, err := CreateJupiter(0, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, "Jupiter_256_64", jp.Descriptor())
	assert.Equal(t, 64*32, jp.TorRange().Size())
	assert.Equal(t, 64*8*4, jp.AggregationRange().Size())
	assert.Equal(t, 256*6, jp.SpineRange().Size())
}

// TestJupiterWiring examines a small instance (4 spine blocks, 2 aggregation
// blocks).  Layers: tor 1-64, middle-block switches 65-128, spine switches
// 129-152.
func TestJupiterWiring(t *testing.T) {
	jp, err := CreateJupiter(4, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, LayerRange{First: 1, Last: 64}, jp.TorRange())
	assert.Equal(t, LayerRange{First: 65, Last: 128}, jp.AggregationRange())
	assert.Equal(t, LayerRange{First: 129, Last: 152}, jp.SpineRange())

	tg := jp.GenGraph()
	checkGraphInvariants(t, tg)
	require.Equal(t, 152, tg.NodeCount())

	torRange := jp.TorRange()
	aggRange := jp.AggregationRange()
	spineRange := jp.SpineRange()

	// each spine block is a full mesh of 6 and never links to another
	// spine block
	for id := spineRange.First; id <= spineRange.Last; id++ {
		require.Equal(t, JupiterSwitchesPerSpineBlock-1, linksInto(tg, id, spineRange),
			"spine switch %d", id)
		blockFirst := spineRange.First +
			(id-spineRange.First)/JupiterSwitchesPerSpineBlock*JupiterSwitchesPerSpineBlock
		for _, nbr := range tg.Neighbors(id) {
			if spineRange.Contains(nbr) {
				assert.GreaterOrEqual(t, nbr, blockFirst)
				assert.Less(t, nbr, blockFirst+JupiterSwitchesPerSpineBlock)
			}
		}
	}

	// each middle-block switch meshes with its three block mates and runs
	// eight uplinks into the spine layer
	for id := aggRange.First; id <= aggRange.Last; id++ {
		assert.Equal(t, JupiterSwitchesPerMiddleBlock-1, linksInto(tg, id, aggRange),
			"middle switch %d", id)
		assert.Equal(t, jupiterUplinksPerMiddleSwitch, linksInto(tg, id, spineRange),
			"middle switch %d", id)
	}

	// the very first middle switch starts the round-robin: one pass over
	// the four spine blocks at switch position 0 (129,135,141,147), then a
	// second pass at position 1 (130,136,142,148)
	uplinks := make([]int, 0)
	for _, nbr := range tg.Neighbors(aggRange.First) {
		if spineRange.Contains(nbr) {
			uplinks = append(uplinks, nbr)
		}
	}
	assert.Equal(t, []int{129, 130, 135, 136, 141, 142, 147, 148}, uplinks)

	// uplinks spread evenly: spine-switch in-degrees from the middle layer
	// differ by at most one
	minIn, maxIn := -1, -1
	for id := spineRange.First; id <= spineRange.Last; id++ {
		in := linksInto(tg, id, aggRange)
		if minIn == -1 || in < minIn {
			minIn = in
		}
		if in > maxIn {
			maxIn = in
		}
	}
	assert.LessOrEqual(t, maxIn-minIn, 1)

	// each tor runs two redundant links into a chassis pair of all eight of
	// its block's middle blocks, and nothing outside its aggregation block
	for id := torRange.First; id <= torRange.Last; id++ {
		require.Equal(t, 2*JupiterMiddleBlocksPerAggregation, linksInto(tg, id, aggRange),
			"tor %d", id)
		require.Equal(t, 0, linksInto(tg, id, spineRange), "tor %d", id)
	}

	// tor 1 sits in tor group 0, so it owns switch positions 0 and 1 of
	// every middle block of aggregation block 0
	expected := make([]int, 0)
	for m := 0; m < JupiterMiddleBlocksPerAggregation; m++ {
		expected = append(expected, 65+m*JupiterSwitchesPerMiddleBlock,
			66+m*JupiterSwitchesPerMiddleBlock)
	}
	assert.Equal(t, expected, tg.Neighbors(1))

	// tor 25 is in group 3 and wraps to positions 3 and 0
	group3 := make([]int, 0)
	for m := 0; m < JupiterMiddleBlocksPerAggregation; m++ {
		group3 = append(group3, 65+m*JupiterSwitchesPerMiddleBlock,
			68+m*JupiterSwitchesPerMiddleBlock)
	}
	assert.Equal(t, group3, tg.Neighbors(25))

	// tors of the second aggregation block stay inside it
	for _, nbr := range tg.Neighbors(33) {
		assert.GreaterOrEqual(t, nbr, 65+32)
	}
}
