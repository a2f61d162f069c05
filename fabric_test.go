package dctopo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFabricDefaults(t *testing.T) {
	fb, err := CreateFabric(4, 2, 0, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, "Fabric_4_2_4_48", fb.Descriptor())
	assert.Equal(t, 4*48, fb.TorRange().Size())
	assert.Equal(t, 4*4, fb.FabricRange().Size())
	assert.Equal(t, 4*4, fb.SpineRange().Size())
	assert.Equal(t, 2*4, fb.EdgeRange().Size())
}

func TestFabricRejectsBadParameters(t *testing.T) {
	var ce *ConfigurationError

	_, err := CreateFabric(-1, 2, 4, 48, nil)
	require.Error(t, err)
	require.ErrorAs(t, err, &ce)

	_, err = CreateFabric(4, -2, 4, 48, nil)
	require.Error(t, err)
	require.ErrorAs(t, err, &ce)
}

func TestFabricPlaneIndexOutOfRange(t *testing.T) {
	fb, err := CreateFabric(2, 1, 2, 4, nil)
	require.NoError(t, err)
	tg := newTopoGraph(fb.layers[0].Size(), fb.layers[1].Size(),
		fb.layers[2].Size(), fb.layers[3].Size())

	var ce *ConfigurationError
	err = fb.connectToPlaneSwitches(tg, -1, fb.FabricRange().First)
	require.Error(t, err)
	require.ErrorAs(t, err, &ce)

	// nrOfPlanes itself is already outside [0, nrOfPlanes)
	err = fb.connectToPlaneSwitches(tg, 2, fb.FabricRange().First)
	require.Error(t, err)
	require.ErrorAs(t, err, &ce)

	err = fb.connectToPlaneSwitches(tg, 1, fb.FabricRange().First)
	require.NoError(t, err)
}

// TestFabricWiring walks a small instance by hand: 2 server pods, 1 edge
// pod, 2 planes, 4 ports.  Layers: tor 1-8, fabric 9-12, spine 13-16,
// edge 17-18.
func TestFabricWiring(t *testing.T) {
	fb, err := CreateFabric(2, 1, 2, 4, nil)
	require.NoError(t, err)

	assert.Equal(t, LayerRange{First: 1, Last: 8}, fb.TorRange())
	assert.Equal(t, LayerRange{First: 9, Last: 12}, fb.FabricRange())
	assert.Equal(t, LayerRange{First: 13, Last: 16}, fb.SpineRange())
	assert.Equal(t, LayerRange{First: 17, Last: 18}, fb.EdgeRange())

	tg := fb.GenGraph()
	checkGraphInvariants(t, tg)
	require.Equal(t, 18, tg.NodeCount())

	// intra-pod: tors 1-4 reach both fabric switches of pod 0, tors 5-8
	// those of pod 1
	assert.Equal(t, []int{9, 10}, tg.Neighbors(1))
	assert.Equal(t, []int{9, 10}, tg.Neighbors(4))
	assert.Equal(t, []int{11, 12}, tg.Neighbors(5))

	// fabric switch 9 is in plane 0, so it reaches spine 13 and 15 plus its
	// pod's tors; 10 is in plane 1 and reaches 14 and 16
	assert.Equal(t, []int{1, 2, 3, 4, 13, 15}, tg.Neighbors(9))
	assert.Equal(t, []int{1, 2, 3, 4, 14, 16}, tg.Neighbors(10))
	assert.Equal(t, []int{5, 6, 7, 8, 13, 15}, tg.Neighbors(11))

	// the edge pod's switches take planes round-robin as well
	assert.Equal(t, []int{13, 15}, tg.Neighbors(17))
	assert.Equal(t, []int{14, 16}, tg.Neighbors(18))
}

// TestFabricPlanePartition verifies that for each plane its fabric and spine
// members form a complete bipartite subgraph, and that the planes partition
// the fabric-spine edge set disjointly.
func TestFabricPlanePartition(t *testing.T) {
	const (
		serverPods = 3
		edgePods   = 2
		planes     = 4
		ports      = 8
	)
	fb, err := CreateFabric(serverPods, edgePods, planes, ports, nil)
	require.NoError(t, err)

	tg := fb.GenGraph()
	checkGraphInvariants(t, tg)

	fabricRange := fb.FabricRange()
	spineRange := fb.SpineRange()

	// collect the members of each plane; both layers assign positions to
	// planes round-robin
	fabricByPlane := make(map[int][]int)
	for id := fabricRange.First; id <= fabricRange.Last; id++ {
		p := (id - fabricRange.First) % planes
		fabricByPlane[p] = append(fabricByPlane[p], id)
	}
	spineByPlane := make(map[int][]int)
	for id := spineRange.First; id <= spineRange.Last; id++ {
		p := (id - spineRange.First) % planes
		spineByPlane[p] = append(spineByPlane[p], id)
	}

	for p := 0; p < planes; p++ {
		for _, f := range fabricByPlane[p] {
			for q := 0; q < planes; q++ {
				for _, s := range spineByPlane[q] {
					if p == q {
						assert.True(t, tg.HasLink(f, s), "plane %d misses edge %d-%d", p, f, s)
					} else {
						assert.False(t, tg.HasLink(f, s), "planes %d/%d share edge %d-%d", p, q, f, s)
					}
				}
			}
		}
	}

	// every edge switch is fully wired to exactly its own plane's spines
	edgeRange := fb.EdgeRange()
	for id := edgeRange.First; id <= edgeRange.Last; id++ {
		p := (id - edgeRange.First) % planes
		assert.Equal(t, spineByPlane[p], tg.Neighbors(id), "edge switch %d", id)
	}
}
