package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/intcode/emulator"
	icio "github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/memory"
	"github.com/ezrec/intcode/trace"
)

var runOpts struct {
	input   string
	output  string
	ascii   bool
	values  string
	trace   string
	limit   int
	stats   bool
	steps   bool
	strict  bool
	defines []string
}

var runCmd = &cobra.Command{
	Use:   "run PROGRAM",
	Short: "Run an Intcode program",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runProgram(args[0])
		if err != nil {
			atexit.Fatalf("%v: %v", args[0], err)
		}
	},
}

func init() {
	flags := runCmd.Flags()
	flags.StringVarP(&runOpts.input, "input", "i", "-", "Input file, - for stdin, or empty for none")
	flags.StringVarP(&runOpts.output, "output", "o", "-", "Output file, - for stdout")
	flags.BoolVar(&runOpts.ascii, "ascii", false, "Exchange input and output as ASCII text")
	flags.StringVar(&runOpts.values, "values", "", "Comma separated values to input first")
	flags.StringVar(&runOpts.trace, "trace", "", "Record every step into a SQLite database")
	flags.IntVar(&runOpts.limit, "limit", 0, "Maximum steps to run, 0 for no limit")
	flags.BoolVar(&runOpts.stats, "stats", false, "Print opcode counts to stderr")
	flags.BoolVar(&runOpts.steps, "steps", false, "Log every step to stderr")
	flags.BoolVar(&runOpts.strict, "strict", false, "Fail reads of never written memory")
	flags.StringArrayVarP(&runOpts.defines, "define", "D", nil, "Assembler equate NAME=VALUE")

	rootCmd.AddCommand(runCmd)
}

func openInput(path string) (input io.Reader, closer func() error, err error) {
	closer = func() error { return nil }
	switch path {
	case "":
	case "-":
		input = os.Stdin
	default:
		var inf *os.File
		inf, err = os.Open(path)
		if err != nil {
			return
		}
		input, closer = inf, inf.Close
	}
	return
}

func createOutput(path string) (output io.Writer, closer func() error, err error) {
	closer = func() error { return nil }
	if path == "-" {
		output = os.Stdout
		return
	}

	ouf, err := os.Create(path)
	if err != nil {
		return
	}
	output, closer = ouf, ouf.Close
	return
}

func runProgram(path string) (err error) {
	prog, err := loadProgram(path, runOpts.defines)
	if err != nil {
		return
	}

	values, err := parseValues(runOpts.values)
	if err != nil {
		return
	}

	var opts []memory.Option
	if runOpts.strict {
		opts = append(opts, memory.Strict())
	}

	emu := emulator.NewEmulator(prog, opts...)
	emu.Verbose = verbose
	defer func() { err = errors.Join(err, emu.Close()) }()

	input, inputClose, err := openInput(runOpts.input)
	if err != nil {
		return
	}
	defer func() { err = errors.Join(err, inputClose()) }()

	output, outputClose, err := createOutput(runOpts.output)
	if err != nil {
		return
	}
	defer func() { err = errors.Join(err, outputClose()) }()

	tape := &icio.Tape{Input: input, Output: output, Ascii: runOpts.ascii}
	emu.Input = tape
	emu.Output = tape
	emu.Processor.PushInput(values...)

	if len(runOpts.trace) != 0 {
		var rec *trace.SQLiteRecorder
		rec, err = trace.NewSQLiteRecorder(runOpts.trace)
		if err != nil {
			return
		}
		rec.Processor = emu.ID
		emu.AcceptHook(rec)
		defer func() { err = errors.Join(err, rec.Close()) }()
		if verbose {
			log.Printf("%v: trace %v", emu.ID, rec.Path())
		}
	}

	var counter *trace.OpcodeCounter
	if runOpts.stats {
		counter = trace.NewOpcodeCounter(nil)
		emu.AcceptHook(counter)
	}

	if runOpts.steps {
		emu.AcceptHook(&trace.LogHook{Logger: log.New(os.Stderr, "", 0), Name: emu.ID})
	}

	err = errors.Join(emu.Run(runOpts.limit), tape.Err())

	if counter != nil {
		err = errors.Join(err, writeStats(os.Stderr, counter, emu.Ticks()))
	}

	return
}

// writeStats prints the per-opcode counts followed by the tick total.
func writeStats(w io.Writer, counter *trace.OpcodeCounter, ticks int) (err error) {
	_, err = counter.WriteTo(w)
	if err != nil {
		return
	}

	_, err = fmt.Fprintf(w, "%-5s %d\n", "ticks", ticks)
	return
}
