package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/memory"
)

var networkOpts struct {
	phases   string
	feedback bool
	search   bool
	seed     int64
}

var networkCmd = &cobra.Command{
	Use:   "network PROGRAM",
	Short: "Run a chain of amplifiers, one per phase",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runNetwork(args[0])
		if err != nil {
			atexit.Fatalf("%v: %v", args[0], err)
		}
	},
}

func init() {
	flags := networkCmd.Flags()
	flags.StringVar(&networkOpts.phases, "phases", "0,1,2,3,4", "Comma separated phase settings")
	flags.BoolVar(&networkOpts.feedback, "feedback", false, "Feed the last amplifier back into the first")
	flags.BoolVar(&networkOpts.search, "search", false, "Try every ordering of the phases")
	flags.Int64Var(&networkOpts.seed, "seed", 0, "Signal sent to the first amplifier, unless searching")

	rootCmd.AddCommand(networkCmd)
}

func runNetwork(path string) (err error) {
	prog, err := loadProgram(path, nil)
	if err != nil {
		return
	}

	phases, err := parseValues(networkOpts.phases)
	if err != nil {
		return
	}

	image := prog.Image()

	if networkOpts.search {
		best, signal, err := emulator.BestPhases(image, phases, networkOpts.feedback)
		if err != nil {
			return err
		}
		fmt.Printf("phases %v signal %d\n", best, signal)
		return nil
	}

	net := emulator.NewNetwork(image, phases, networkOpts.feedback)
	net.Verbose = verbose
	signal, err := net.Run(memory.Value(networkOpts.seed))
	if err != nil {
		return
	}

	fmt.Printf("%d\n", signal)
	return
}
