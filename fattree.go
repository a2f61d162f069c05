package dctopo

// fattree.go holds the generator for the classical three-tier fat-tree
// architecture.
// Structure extracted from: http://ccr.sigcomm.org/online/files/p63-alfares.pdf

import "strconv"

// A FatTree synthesizes a classical fat-tree built from switches that all
// have the same even port count.  The port count fixes everything else: there
// are portCount pods, each pairing portCount/2 top-of-rack switches with
// portCount/2 aggregation switches, and (portCount/2)^2 core switches split
// into portCount/2 groups.
type FatTree struct {
	topoBase
	portCount int

	torSwitches         int
	aggregationSwitches int
	coreSwitches        int
}

// CreateFatTree is a constructor.  portCount is the number of ports on the
// building switches and must be even and at least 2.  rule, which may be
// nil, initializes link capacities after wiring.
func CreateFatTree(portCount int, rule *CapacityRule) (*FatTree, error) {
	if portCount < 2 || portCount%2 != 0 {
		return nil, configErrorf("fat-tree needs an even port count of at least 2, got %d", portCount)
	}

	ft := new(FatTree)
	ft.portCount = portCount

	// a core group has as many switches as a pod has uplinks (portCount/2)
	pods := portCount
	ft.torSwitches = pods * portCount / 2
	ft.aggregationSwitches = pods * portCount / 2
	ft.coreSwitches = (portCount / 2) * (portCount / 2)

	layers := allocLayers(ft.torSwitches, ft.aggregationSwitches, ft.coreSwitches)
	base, err := createTopoBase(layers, "FatTree_"+strconv.Itoa(portCount), rule)
	if err != nil {
		return nil, err
	}
	ft.topoBase = base

	return ft, nil
}

// TorRange returns the identifier range of the top-of-rack layer.
func (ft *FatTree) TorRange() LayerRange {
	return ft.layers[0]
}

// AggregationRange returns the identifier range of the aggregation layer.
func (ft *FatTree) AggregationRange() LayerRange {
	return ft.layers[1]
}

// CoreRange returns the identifier range of the core layer.
func (ft *FatTree) CoreRange() LayerRange {
	return ft.layers[2]
}

// GenGraph synthesizes the fat-tree's node and link structure.
func (ft *FatTree) GenGraph() *TopoGraph {
	tg := newTopoGraph(ft.torSwitches, ft.aggregationSwitches, ft.coreSwitches)

	pods := ft.portCount
	torPerPod := ft.torSwitches / pods
	aggPerPod := ft.aggregationSwitches / pods
	torFirst := ft.TorRange().First
	aggFirst := ft.AggregationRange().First
	coreFirst := ft.CoreRange().First

	// wiring inside pods: every top-of-rack switch reaches every
	// aggregation switch of its pod
	for i := 0; i < ft.torSwitches; i++ {
		pod := i / torPerPod
		for j := 0; j < aggPerPod; j++ {
			tg.addCable(torFirst+i, aggFirst+pod*aggPerPod+j)
		}
	}

	// wiring to the core: the j-th aggregation switch within each pod
	// reaches every switch of core group j, so every pod touches every core
	// group through exactly one of its aggregation switches
	perCoreGroup := ft.portCount / 2
	for i := 0; i < ft.aggregationSwitches; i++ {
		posInPod := i % aggPerPod
		for j := 0; j < perCoreGroup; j++ {
			tg.addCable(aggFirst+i, coreFirst+posInPod*perCoreGroup+j)
		}
	}

	return ft.initCapacities(tg, ft)
}
