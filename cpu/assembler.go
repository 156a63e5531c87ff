// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/memory"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":          "0",
	"MODE_POSITIONAL": strconv.Itoa(int(MODE_POSITIONAL)),
	"MODE_IMMEDIATE":  strconv.Itoa(int(MODE_IMMEDIATE)),
	"MODE_RELATIVE":   strconv.Itoa(int(MODE_RELATIVE)),
}

// opcodeEquate holds an OP_<MNEMONIC> equate per opcode.
var opcodeEquate = func() map[string]string {
	equ := make(map[string]string, len(Opcodes))
	for _, op := range Opcodes {
		equ["OP_"+strings.ToUpper(op.String())] = strconv.Itoa(int(op))
	}
	return equ
}()

// mnemonicMap maps mnemonics to opcodes.
var mnemonicMap = func() map[string]Opcode {
	ops := make(map[string]Opcode, len(Opcodes))
	for _, op := range Opcodes {
		ops[op.String()] = op
	}
	return ops
}()

var (
	reLabel     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	reCharacter = regexp.MustCompile(`'\\?[^']'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass macro assembler for Intcode programs.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string         // Predefines
	Label     map[string]memory.Address // Map of labels to addresses.
	Equate    map[string]string         // Map of equates.
	Macro     map[string](*Macro)       // Map of macros.

	ip        memory.Address // Location counter.
	expansion int            // Count of macro expansions.
	depth     int            // Current macro nesting depth.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// resolve follows equates until a word that is not an equate.
func (asm *Assembler) resolve(word string) (resolved string, err error) {
	resolved = word
	for depth := 0; ; depth++ {
		equate, ok := asm.Equate[resolved]
		if !ok {
			return
		}
		if depth == 16 {
			err = ErrEquateLoop
			return
		}
		resolved = equate
	}
}

// valueOf returns the value of a number or equate.
func (asm *Assembler) valueOf(word string) (value memory.Value, err error) {
	word, err = asm.resolve(word)
	if err != nil {
		return
	}

	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = memory.Value(v64)
	return
}

// cellOf returns the value of a word, or the label it refers to.
func (asm *Assembler) cellOf(word string) (value memory.Value, label string, err error) {
	word, err = asm.resolve(word)
	if err != nil {
		return
	}

	value, err = asm.valueOf(word)
	if err != nil && reLabel.MatchString(word) {
		// Linked after the whole source is read.
		label = word
		value = 0
		err = nil
	}

	return
}

// operand decodes an operand word into its mode and cell.
func (asm *Assembler) operand(word string) (mode Mode, value memory.Value, label string, err error) {
	mode = MODE_POSITIONAL
	switch {
	case strings.HasPrefix(word, MODE_IMMEDIATE.Prefix()):
		mode = MODE_IMMEDIATE
		word = word[1:]
	case strings.HasPrefix(word, MODE_RELATIVE.Prefix()):
		mode = MODE_RELATIVE
		word = word[1:]
		if len(word) == 0 {
			word = "0"
		}
	}

	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	if mode != MODE_POSITIONAL && strings.ContainsAny(word[:1], "#%") {
		err = ErrModeInvalid
		return
	}

	value, label, err = asm.cellOf(word)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value memory.Value, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v memory.Value
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(int64(v))
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeUint64(uint64(ip))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = memory.Value(st_int64)
	return
}

// parseLine parses a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "s":
				str = " "
			case "e":
				str = "\033"
			default:
				err = ErrParseCharacter(word)
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return strconv.Itoa(int(str[0]))
	})
	if err != nil {
		return
	}

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(int64(value), 10)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.ip
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		if asm.depth == 16 {
			err = ErrMacroLoop
			return
		}
		asm.depth++
		defer func() { asm.depth-- }()
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansion++
		prefix := fmt.Sprintf("%v_%v_", name, asm.expansion)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", prefix)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.ip = 0
	asm.expansion = 0
	asm.depth = 0
	asm.Lines = asm.Lines[:0]
	asm.Label = make(map[string]memory.Address)
	asm.Macro = make(map[string](*Macro))
	asm.Equate = maps.Collect(internal.IterSeq2Concat(
		maps.All(sysEquate),
		maps.All(opcodeEquate),
		maps.All(asm.predefine),
	))

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]
		for _, link := range op.Links {
			ip, ok := asm.Label[link.Label]
			if !ok {
				lineno = op.LineNo
				line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(link.Label)
				return
			}
			op.Cells[link.Index] += memory.Value(ip)
		}
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var cells []memory.Value
	var links []Link

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := slices.Clone(words)

	defer func() {
		if err != nil || len(cells) == 0 {
			return
		}
		line := Line{LineNo: lineno, Ip: asm.ip, Words: initial_words, Cells: cells, Links: links}
		asm.Lines = append(asm.Lines, line)
		asm.ip += memory.Address(len(cells))
	}()

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var value memory.Value
		value, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if value < memory.Value(asm.ip) {
			err = ErrOrgBackwards
			return
		}
		asm.ip = memory.Address(value)
		return
	case ".data":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for n, word := range words[1:] {
			var value memory.Value
			var label string
			value, label, err = asm.cellOf(word)
			if err != nil {
				return
			}
			if len(label) != 0 {
				links = append(links, Link{Index: n, Label: label})
			}
			cells = append(cells, value)
		}
		return
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) < op.Operands() {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > op.Operands() {
		err = ErrOpcodeExtraArgs
		return
	}

	var modes [MAX_OPERANDS]Mode
	operands := make([]memory.Value, 0, MAX_OPERANDS)
	for n, arg := range args {
		var value memory.Value
		var label string
		modes[n], value, label, err = asm.operand(arg)
		if err != nil {
			return
		}
		if len(label) != 0 {
			links = append(links, Link{Index: n + 1, Label: label})
		}
		operands = append(operands, value)
	}

	cells = append([]memory.Value{Encode(op, modes[:len(args)]...)}, operands...)

	if asm.Verbose {
		log.Printf("%v: %04d %v", lineno, asm.ip, cells)
	}

	return
}
