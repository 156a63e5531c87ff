package emulator

import (
	"log"
	"slices"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/memory"
)

// Network is a chain of processors, each passing its outputs to the next.
type Network struct {
	Verbose  bool             // If set, logs every value passed.
	Nodes    []*cpu.Processor // Processors, in signal order.
	Feedback bool             // If set, the last node feeds the first.
}

// NewNetwork creates a processor per phase, each running its own copy of
// image, and seeds each with its phase as the first input.
func NewNetwork(image []memory.Value, phases []memory.Value, feedback bool) (net *Network) {
	net = &Network{
		Feedback: feedback,
	}

	for _, phase := range phases {
		node := cpu.NewProcessor(memory.FromSlice(image))
		node.PushInput(phase)
		net.Nodes = append(net.Nodes, node)
	}

	return
}

// Run sends seed to the first node, and returns the last value emitted by
// the final node. Without feedback a single pass is made; with feedback,
// values circulate until the first node halts.
func (net *Network) Run(seed memory.Value) (signal memory.Value, err error) {
	var emitted bool

	value := seed
	for {
		for n, node := range net.Nodes {
			node.PushInput(value)

			var done bool
			value, done, err = node.ExecuteUntilOutput()
			if err != nil {
				return
			}
			if done {
				if !emitted {
					err = ErrNetworkSilent
				}
				return
			}

			if net.Verbose {
				log.Printf("network: node %d output %d", n, value)
			}

			if n == len(net.Nodes)-1 {
				signal = value
				emitted = true
			}
		}

		if !net.Feedback || len(net.Nodes) == 0 {
			break
		}
	}

	if !emitted {
		err = ErrNetworkSilent
	}

	return
}

// BestPhases tries every ordering of phases, and returns the ordering that
// produces the highest signal from a seed of 0.
func BestPhases(image []memory.Value, phases []memory.Value, feedback bool) (best []memory.Value, signal memory.Value, err error) {
	for perm := range internal.Permutations(phases) {
		var value memory.Value
		value, err = NewNetwork(image, perm, feedback).Run(0)
		if err != nil {
			best = nil
			return
		}
		if best == nil || value > signal {
			best = slices.Clone(perm)
			signal = value
		}
	}

	return
}
