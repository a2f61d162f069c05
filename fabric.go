package dctopo

// fabric.go holds the generator for Facebook's Fabric architecture.
// Structure extracted from: https://code.fb.com/production-engineering/introducing-data-center-fabric-the-next-generation-facebook-data-center-network/

import "fmt"

// Default values applied when CreateFabric is given zero for the
// corresponding parameter.
const (
	DefaultFabricPlanes = 4
	DefaultFabricPorts  = 48
)

// A Fabric synthesizes Facebook's Fabric: server pods of top-of-rack
// switches behind per-pod fabric switches, several parallel spine planes,
// and edge pods connecting the fabric to the outside.  Each fabric and edge
// switch belongs to exactly one plane and is fully connected to that plane's
// spine switches.
type Fabric struct {
	topoBase
	serverPods int
	edgePods   int
	nrOfPlanes int
	portCount  int
}

// CreateFabric is a constructor.  serverPods and edgePods set how many
// server pods and edge pods the architecture holds.  nrOfPlanes and
// portCount may be given as 0 to select the defaults of 4 and 48.  rule,
// which may be nil, initializes link capacities after wiring.
func CreateFabric(serverPods, edgePods, nrOfPlanes, portCount int, rule *CapacityRule) (*Fabric, error) {
	if nrOfPlanes == 0 {
		nrOfPlanes = DefaultFabricPlanes
	}
	if portCount == 0 {
		portCount = DefaultFabricPorts
	}
	if serverPods < 1 || edgePods < 0 || nrOfPlanes < 1 || portCount < 1 {
		return nil, configErrorf("fabric needs at least one server pod, plane, and port, "+
			"and a non-negative edge pod count, got %d/%d/%d/%d",
			serverPods, edgePods, nrOfPlanes, portCount)
	}

	fb := new(Fabric)
	fb.serverPods = serverPods
	fb.edgePods = edgePods
	fb.nrOfPlanes = nrOfPlanes
	fb.portCount = portCount

	// every server pod fills one position in each plane with a fabric
	// switch and one with a spine uplink, every edge pod one per plane
	layers := allocLayers(serverPods*portCount, serverPods*nrOfPlanes,
		serverPods*nrOfPlanes, edgePods*nrOfPlanes)
	descriptor := fmt.Sprintf("Fabric_%d_%d_%d_%d", serverPods, edgePods, nrOfPlanes, portCount)
	base, err := createTopoBase(layers, descriptor, rule)
	if err != nil {
		return nil, err
	}
	fb.topoBase = base

	return fb, nil
}

// TorRange returns the identifier range of the top-of-rack layer.
func (fb *Fabric) TorRange() LayerRange {
	return fb.layers[0]
}

// FabricRange returns the identifier range of the fabric-switch layer.
func (fb *Fabric) FabricRange() LayerRange {
	return fb.layers[1]
}

// SpineRange returns the identifier range of the spine layer.
func (fb *Fabric) SpineRange() LayerRange {
	return fb.layers[2]
}

// EdgeRange returns the identifier range of the edge-pod layer.
func (fb *Fabric) EdgeRange() LayerRange {
	return fb.layers[3]
}

// connectToPlaneSwitches cables the switch whose id is given to every spine
// switch of one plane, forming that switch's share of the plane's complete
// bipartite wiring.  The members of plane p sit at positions p, p+nrOfPlanes,
// p+2*nrOfPlanes, ... within the spine range.  A plane outside
// [0,nrOfPlanes) yields a ConfigurationError.
func (fb *Fabric) connectToPlaneSwitches(tg *TopoGraph, plane, switchID int) error {
	if plane < 0 || plane >= fb.nrOfPlanes {
		return configErrorf("there are only %d spine planes, plane %d does not exist",
			fb.nrOfPlanes, plane)
	}

	sr := fb.SpineRange()
	for current := sr.First + plane; current <= sr.Last; current += fb.nrOfPlanes {
		tg.addCable(current, switchID)
	}

	return nil
}

// GenGraph synthesizes the Fabric's node and link structure.
func (fb *Fabric) GenGraph() *TopoGraph {
	tg := newTopoGraph(fb.layers[0].Size(), fb.layers[1].Size(),
		fb.layers[2].Size(), fb.layers[3].Size())

	// intra-pod links: every top-of-rack switch reaches all nrOfPlanes
	// fabric switches of its pod
	torRange := fb.TorRange()
	fabricFirst := fb.FabricRange().First
	for i := torRange.First; i <= torRange.Last; i++ {
		pod := (i - 1) / fb.portCount
		for j := 0; j < fb.nrOfPlanes; j++ {
			tg.addCable(i, fabricFirst+fb.nrOfPlanes*pod+j)
		}
	}

	// fabric switches take planes round-robin, each fully wired to its
	// plane's spine switches.  The plane loops below cannot present an
	// out-of-range plane, so an error here is an internal fault.
	plane := 0
	fabricRange := fb.FabricRange()
	for i := fabricRange.First; i <= fabricRange.Last; i++ {
		err := fb.connectToPlaneSwitches(tg, plane, i)
		if err != nil {
			panic(err)
		}
		plane = (plane + 1) % fb.nrOfPlanes
	}

	// edge-pod switches attach to the spine planes the same way
	plane = 0
	edgeRange := fb.EdgeRange()
	for i := edgeRange.First; i <= edgeRange.Last; i++ {
		err := fb.connectToPlaneSwitches(tg, plane, i)
		if err != nil {
			panic(err)
		}
		plane = (plane + 1) % fb.nrOfPlanes
	}

	return fb.initCapacities(tg, fb)
}
