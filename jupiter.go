package dctopo

// jupiter.go holds the switch-level generator for Google's Jupiter
// architecture, with some redundant connections outside the server pods
// simplified.
// Structure extracted from: https://dl.acm.org/citation.cfm?doid=2785956.2787508

import "fmt"

// Fixed chassis geometry of the Jupiter building blocks.
const (
	JupiterSwitchesPerSpineBlock      = 6
	JupiterSwitchesPerMiddleBlock     = 4
	JupiterMiddleBlocksPerAggregation = 8
	JupiterTorsPerAggregationBlock    = 32
)

// every switch of a middle block runs this many uplinks to the spine layer
const jupiterUplinksPerMiddleSwitch = 8

// Default block counts applied when a Jupiter constructor is given zero for
// the corresponding parameter.
const (
	DefaultJupiterSpineBlocks       = 256
	DefaultJupiterAggregationBlocks = 64
)

// A Jupiter synthesizes Google's Jupiter at switch granularity: aggregation
// blocks of 32 top-of-rack switches behind 8 middle blocks of 4 switches
// each, and spine blocks of 6 fully meshed switches.
type Jupiter struct {
	topoBase
	spineBlockCount       int
	aggregationBlockCount int
}

// validateJupiterBlocks applies the defaults and the precondition both
// Jupiter abstraction levels share: at least one aggregation block, and at
// least as many spine blocks as aggregation blocks.
func validateJupiterBlocks(spineBlockCount, aggregationBlockCount int) (int, int, error) {
	if spineBlockCount == 0 {
		spineBlockCount = DefaultJupiterSpineBlocks
	}
	if aggregationBlockCount == 0 {
		aggregationBlockCount = DefaultJupiterAggregationBlocks
	}
	if aggregationBlockCount < 1 {
		return 0, 0, configErrorf("jupiter needs at least one aggregation block, got %d",
			aggregationBlockCount)
	}
	if spineBlockCount < aggregationBlockCount {
		return 0, 0, configErrorf("jupiter needs at least as many spine blocks as "+
			"aggregation blocks, got %d spine for %d aggregation",
			spineBlockCount, aggregationBlockCount)
	}

	return spineBlockCount, aggregationBlockCount, nil
}

// CreateJupiter is a constructor.  spineBlockCount and aggregationBlockCount
// may be given as 0 to select the defaults of 256 and 64; the spine block
// count must be at least the aggregation block count.  rule, which may be
// nil, initializes link capacities after wiring.
func CreateJupiter(spineBlockCount, aggregationBlockCount int, rule *CapacityRule) (*Jupiter, error) {
	spineBlockCount, aggregationBlockCount, err := validateJupiterBlocks(spineBlockCount, aggregationBlockCount)
	if err != nil {
		return nil, err
	}

	jp := new(Jupiter)
	jp.spineBlockCount = spineBlockCount
	jp.aggregationBlockCount = aggregationBlockCount

	torCount := aggregationBlockCount * JupiterTorsPerAggregationBlock
	aggCount := aggregationBlockCount * JupiterMiddleBlocksPerAggregation * JupiterSwitchesPerMiddleBlock
	spineCount := spineBlockCount * JupiterSwitchesPerSpineBlock

	layers := allocLayers(torCount, aggCount, spineCount)
	descriptor := fmt.Sprintf("Jupiter_%d_%d", spineBlockCount, aggregationBlockCount)
	base, berr := createTopoBase(layers, descriptor, rule)
	if berr != nil {
		return nil, berr
	}
	jp.topoBase = base

	return jp, nil
}

// TorRange returns the identifier range of the top-of-rack layer.
func (jp *Jupiter) TorRange() LayerRange {
	return jp.layers[0]
}

// AggregationRange returns the identifier range of the middle-block switch layer.
func (jp *Jupiter) AggregationRange() LayerRange {
	return jp.layers[1]
}

// SpineRange returns the identifier range of the spine-block switch layer.
func (jp *Jupiter) SpineRange() LayerRange {
	return jp.layers[2]
}

// GenGraph synthesizes Jupiter's node and link structure at switch level.
func (jp *Jupiter) GenGraph() *TopoGraph {
	torRange := jp.TorRange()
	aggRange := jp.AggregationRange()
	spineRange := jp.SpineRange()
	tg := newTopoGraph(torRange.Size(), aggRange.Size(), spineRange.Size())

	// prestructure the switch ids by block to keep the link creation concise

	// aggregation[a][m][s] is the id of switch s of middle block m of
	// aggregation block a
	aggregation := make([][][]int, jp.aggregationBlockCount)
	nextID := aggRange.First
	for a := range aggregation {
		aggregation[a] = make([][]int, JupiterMiddleBlocksPerAggregation)
		for m := range aggregation[a] {
			aggregation[a][m] = make([]int, JupiterSwitchesPerMiddleBlock)
			for s := range aggregation[a][m] {
				aggregation[a][m][s] = nextID
				nextID++
			}
		}
	}

	// spines[b][s] is the id of switch s of spine block b
	spines := make([][]int, jp.spineBlockCount)
	nextID = spineRange.First
	for b := range spines {
		spines[b] = make([]int, JupiterSwitchesPerSpineBlock)
		for s := range spines[b] {
			spines[b][s] = nextID
			nextID++
		}
	}

	// full mesh among the six switches of each spine block
	for b := 0; b < jp.spineBlockCount; b++ {
		for s := 0; s < JupiterSwitchesPerSpineBlock; s++ {
			for previous := 0; previous < s; previous++ {
				tg.addCable(spines[b][s], spines[b][previous])
			}
		}
	}

	// middle blocks: full mesh inside each block, plus eight uplinks per
	// switch distributed round-robin over the spine blocks.  The cursor
	// advances to the next switch position within the spine blocks once a
	// full pass over all spine blocks completes, spreading the uplinks
	// evenly over both blocks and positions.
	spineBlockIdx := 0
	spineSwitchPos := 0
	for a := 0; a < jp.aggregationBlockCount; a++ {
		for m := 0; m < JupiterMiddleBlocksPerAggregation; m++ {
			for s := 0; s < JupiterSwitchesPerMiddleBlock; s++ {
				for previous := 0; previous < s; previous++ {
					tg.addCable(aggregation[a][m][s], aggregation[a][m][previous])
				}
				for up := 0; up < jupiterUplinksPerMiddleSwitch; up++ {
					tg.addCable(aggregation[a][m][s], spines[spineBlockIdx][spineSwitchPos])
					spineBlockIdx = (spineBlockIdx + 1) % jp.spineBlockCount
					if spineBlockIdx == 0 {
						spineSwitchPos = (spineSwitchPos + 1) % JupiterSwitchesPerSpineBlock
					}
				}
			}
		}
	}

	// top-of-rack switches: two redundant links into adjacent switch
	// positions of each of the aggregation block's eight middle blocks.
	// Each group of eight tor switches owns one chassis pair per middle
	// block (positions t/8 and t/8+1, wrapping within the block).
	torID := torRange.First
	for a := 0; a < jp.aggregationBlockCount; a++ {
		for t := 0; t < JupiterTorsPerAggregationBlock; t++ {
			switchPos := t / 8
			secondPos := (switchPos + 1) % JupiterSwitchesPerMiddleBlock
			for m := 0; m < JupiterMiddleBlocksPerAggregation; m++ {
				tg.addCable(torID, aggregation[a][m][switchPos])
				tg.addCable(torID, aggregation[a][m][secondPos])
			}
			torID++
		}
	}

	return jp.initCapacities(tg, jp)
}
