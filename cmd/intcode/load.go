package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/intcode/cpu"
	icio "github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/memory"
)

// SOURCE_EXT marks assembler sources; anything else is a program image.
const SOURCE_EXT = ".ics"

// loadProgram assembles a source file, or loads a comma separated image.
func loadProgram(path string, defines []string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	if filepath.Ext(path) == SOURCE_EXT {
		asm := &cpu.Assembler{Verbose: verbose}
		for _, define := range defines {
			name, value, _ := strings.Cut(define, "=")
			if len(value) == 0 {
				value = "1"
			}
			asm.Predefine(name, value)
		}
		prog, err = asm.Parse(inf)
		return
	}

	rom := &icio.Rom{}
	_, err = rom.ReadFrom(inf)
	if err != nil {
		return
	}

	prog = cpu.NewProgram(rom.Data)
	return
}

// parseValues parses a comma separated list of values.
func parseValues(text string) (values []memory.Value, err error) {
	rom := &icio.Rom{}
	_, err = rom.ReadFrom(strings.NewReader(text))
	values = rom.Data
	return
}
