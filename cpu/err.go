package cpu

import (
	"errors"

	"github.com/ezrec/intcode/memory"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrIllegalMode                = errors.New(f("illegal mode"))
	ErrInvalidOpcode              = errors.New(f("invalid opcode"))
	ErrFinishedWithoutTerminating = errors.New(f("finished without terminating"))

	// Execution errors
	ErrInputRead                 = errors.New(f("input read"))
	ErrIllegalPositionalArgument = errors.New(f("illegal positional argument"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrEquateLoop         = errors.New(f(".equ too deeply nested"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrOrgBackwards       = errors.New(f(".org moves backwards"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrMacroLoop          = errors.New(f(".macro too deeply nested"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrModeInvalid        = errors.New(f("mode invalid"))
)

// ErrOpcode locates a failed instruction.
type ErrOpcode struct {
	Ip   memory.Address // Address of the instruction.
	Cell memory.Value   // Instruction cell at Ip.
}

func (eo ErrOpcode) Error() string {
	return f("instruction %v at %v", int64(eo.Cell), uint64(eo.Ip))
}

// Is matches any ErrOpcode.
func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
