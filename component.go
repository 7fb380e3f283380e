package hwseed

import (
	"fmt"
	"strings"
)

// Component identifies a hardware category that receives its own derived seed.
type Component int

// Hardware components with independent seeds.
const (
	CPU Component = iota
	GPU
	Motherboard
	Memory
	Disk
	Monitor
	Network
)

// componentCount is the number of defined components.
const componentCount = int(Network) + 1

// Component names used by [Component.String] and [ParseComponent].
const (
	ComponentCPU         = "cpu"
	ComponentGPU         = "gpu"
	ComponentMotherboard = "motherboard"
	ComponentMemory      = "memory"
	ComponentDisk        = "disk"
	ComponentMonitor     = "monitor"
	ComponentNetwork     = "network"
)

// componentTags are fixed four-character codes, one per component.
// They are part of MixVersion 1 and must never be reordered or edited.
var componentTags = [componentCount]uint32{
	CPU:         fourCC("CPU0"),
	GPU:         fourCC("GPU0"),
	Motherboard: fourCC("MBRD"),
	Memory:      fourCC("MEM0"),
	Disk:        fourCC("DISK"),
	Monitor:     fourCC("MON0"),
	Network:     fourCC("NET0"),
}

var componentNames = [componentCount]string{
	CPU:         ComponentCPU,
	GPU:         ComponentGPU,
	Motherboard: ComponentMotherboard,
	Memory:      ComponentMemory,
	Disk:        ComponentDisk,
	Monitor:     ComponentMonitor,
	Network:     ComponentNetwork,
}

// Components returns every component in declaration order.
func Components() []Component {
	out := make([]Component, componentCount)
	for i := range out {
		out[i] = Component(i)
	}

	return out
}

// String returns the lower-case component name.
func (c Component) String() string {
	if !c.valid() {
		return fmt.Sprintf("component(%d)", int(c))
	}

	return componentNames[c]
}

// Tag returns the fixed derivation tag of the component.
func (c Component) Tag() uint32 {
	if !c.valid() {
		return 0
	}

	return componentTags[c]
}

func (c Component) valid() bool {
	return c >= CPU && c <= Network
}

// ParseComponent converts a component name, as returned by [Component.String],
// back into a [Component]. Matching is case-insensitive.
func ParseComponent(name string) (Component, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range componentNames {
		if n == lower {
			return Component(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown component %q", ErrInvalidArgument, name)
}

// DeriveComponentSeed computes the seed of component c from the master and
// hardware seeds. It is a pure function.
//
// The tag is spread with the golden ratio increment and combined with the
// rotated hardware seed before a first [Mix32] round; the result is XORed with
// the master seed and mixed again. Both rounds are bijections, so for a fixed
// master and hardware seed distinct tags always yield distinct seeds, and any
// change of the master seed changes every component seed.
func DeriveComponentSeed(master, hardware uint32, c Component) uint32 {
	h := Mix32(c.Tag()*goldenGamma ^ rotl32(hardware, hardwareRotate))

	return Mix32(master ^ h)
}

// componentSeeds derives all component seeds at once.
func componentSeeds(master, hardware uint32) [componentCount]uint32 {
	var seeds [componentCount]uint32
	for i := range seeds {
		seeds[i] = DeriveComponentSeed(master, hardware, Component(i))
	}

	return seeds
}

func fourCC(s string) uint32 {
	return uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3])
}
