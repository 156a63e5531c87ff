package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/intcode/cpu"
)

var asmOpts struct {
	output  string
	listing bool
	defines []string
}

var asmCmd = &cobra.Command{
	Use:   "asm SOURCE",
	Short: "Assemble a source into a comma separated image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := assembleSource(args[0])
		if err != nil {
			atexit.Fatalf("%v: %v", args[0], err)
		}
	},
}

func init() {
	flags := asmCmd.Flags()
	flags.StringVarP(&asmOpts.output, "output", "o", "-", "Output file, - for stdout")
	flags.BoolVar(&asmOpts.listing, "listing", false, "Print a listing instead of the image")
	flags.StringArrayVarP(&asmOpts.defines, "define", "D", nil, "Assembler equate NAME=VALUE")

	rootCmd.AddCommand(asmCmd)
}

// writeImage writes the program as a comma separated image.
func writeImage(w io.Writer, prog *cpu.Program) (err error) {
	image := prog.Image()
	words := make([]string, len(image))
	for n, cell := range image {
		words[n] = strconv.FormatInt(int64(cell), 10)
	}

	_, err = fmt.Fprintln(w, strings.Join(words, ","))
	return
}

// writeListing writes address, source line and disassembly per line.
func writeListing(w io.Writer, prog *cpu.Program) (err error) {
	mem := prog.Memory()
	for _, line := range prog.Lines {
		text, _, _ := cpu.Disassemble(mem, line.Ip)
		if len(line.Words) != 0 && line.Words[0] == ".data" {
			text = ""
		}
		_, err = fmt.Fprintf(w, "%04d %5d  %-32s ; %v\n", line.Ip, line.LineNo, strings.Join(line.Words, " "), text)
		if err != nil {
			return
		}
	}

	return
}

func assembleSource(path string) (err error) {
	prog, err := loadProgram(path, asmOpts.defines)
	if err != nil {
		return
	}

	output, outputClose, err := createOutput(asmOpts.output)
	if err != nil {
		return
	}
	defer func() { err = errors.Join(err, outputClose()) }()

	if asmOpts.listing {
		err = writeListing(output, prog)
	} else {
		err = writeImage(output, prog)
	}

	return
}
