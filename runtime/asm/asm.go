// Package asm assembles the textual programs run by processes on the
// simulated machine. A program is one instruction per line, optionally
// prefixed by "label:"; "#" starts a comment.
//
//	set dN, v     dN = v
//	add dN, v     dN += v
//	work us       compute for us microseconds (preemptible)
//	sys n         system call n
//	io dev        start an operation on dev, completion raises an interrupt
//	jmp label     jump
//	jnz dN, label jump when dN != 0
//	ldst addr     load the state stored at addr (supervisor only)
//	fault mm|prog raise a memory or program trap
package asm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/nucleus/model/device"
	"github.com/viant/nucleus/model/trap"
	"github.com/viant/parsly"
)

// ErrSyntax reports a malformed program
var ErrSyntax = errors.New("syntax error")

// Opcode represents an instruction mnemonic
type Opcode string

const (
	Set   Opcode = "set"
	Add   Opcode = "add"
	Work  Opcode = "work"
	Sys   Opcode = "sys"
	IO    Opcode = "io"
	Jmp   Opcode = "jmp"
	Jnz   Opcode = "jnz"
	Ldst  Opcode = "ldst"
	Fault Opcode = "fault"
)

// Instruction represents an assembled instruction
type Instruction struct {
	Op     Opcode
	Reg    int
	Value  int
	Label  string
	Target int
	Device device.ID
	Class  trap.Class
	Line   int
}

// Program represents an assembled program
type Program struct {
	Name         string
	Instructions []*Instruction
	Labels       map[string]int
}

// At returns the instruction at pc
func (p *Program) At(pc int) (*Instruction, bool) {
	if pc < 0 || pc >= len(p.Instructions) {
		return nil, false
	}
	return p.Instructions[pc], true
}

// Assemble parses source into a program with resolved jump targets
func Assemble(name, source string) (*Program, error) {
	ret := &Program{Name: name, Labels: map[string]int{}}
	for i, text := range strings.Split(source, "\n") {
		if index := strings.IndexByte(text, '#'); index != -1 {
			text = text[:index]
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		parser := &lineParser{cursor: parsly.NewCursor(name, []byte(text), 0)}
		label, instruction, err := parser.parse()
		if err != nil {
			return nil, fmt.Errorf("%w: %v:%d: %v", ErrSyntax, name, i+1, err)
		}
		if label != "" {
			if _, ok := ret.Labels[label]; ok {
				return nil, fmt.Errorf("%w: %v:%d: duplicate label %v", ErrSyntax, name, i+1, label)
			}
			ret.Labels[label] = len(ret.Instructions)
		}
		if instruction != nil {
			instruction.Line = i + 1
			ret.Instructions = append(ret.Instructions, instruction)
		}
	}
	for _, instruction := range ret.Instructions {
		if instruction.Label == "" {
			continue
		}
		target, ok := ret.Labels[instruction.Label]
		if !ok {
			return nil, fmt.Errorf("%w: %v:%d: undefined label %v", ErrSyntax, name, instruction.Line, instruction.Label)
		}
		instruction.Target = target
	}
	return ret, nil
}

type lineParser struct {
	cursor *parsly.Cursor
}

func (p *lineParser) parse() (string, *Instruction, error) {
	word, err := p.identifier()
	if err != nil {
		return "", nil, err
	}
	label := ""
	p.skip()
	if p.cursor.MatchOne(colonToken).Code == colonCode {
		label = word
		if p.blank() {
			return label, nil, nil
		}
		if word, err = p.identifier(); err != nil {
			return "", nil, err
		}
	}
	instruction, err := p.instruction(Opcode(strings.ToLower(word)))
	if err != nil {
		return "", nil, err
	}
	if !p.blank() {
		return "", nil, fmt.Errorf("unexpected %q", string(p.cursor.Input[p.cursor.Pos:]))
	}
	return label, instruction, nil
}

func (p *lineParser) instruction(op Opcode) (*Instruction, error) {
	ret := &Instruction{Op: op}
	var err error
	switch op {
	case Set, Add:
		if ret.Reg, err = p.register(); err == nil {
			if err = p.comma(); err == nil {
				ret.Value, err = p.number()
			}
		}
	case Work, Sys, Ldst:
		ret.Value, err = p.number()
	case IO:
		var name string
		if name, err = p.operand(); err == nil {
			ret.Device, err = device.Parse(name)
		}
	case Jmp:
		ret.Label, err = p.identifier()
	case Jnz:
		if ret.Reg, err = p.register(); err == nil {
			if err = p.comma(); err == nil {
				ret.Label, err = p.identifier()
			}
		}
	case Fault:
		var kind string
		if kind, err = p.identifier(); err == nil {
			switch strings.ToLower(kind) {
			case "mm", "memory":
				ret.Class = trap.Memory
			case "prog", "program":
				ret.Class = trap.Program
			default:
				err = fmt.Errorf("unknown fault %v", kind)
			}
		}
	default:
		return nil, fmt.Errorf("unknown instruction %v", op)
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (p *lineParser) skip() {
	p.cursor.MatchOne(whitespaceToken)
}

func (p *lineParser) blank() bool {
	p.skip()
	return p.cursor.Pos >= p.cursor.InputSize
}

func (p *lineParser) identifier() (string, error) {
	p.skip()
	matched := p.cursor.MatchOne(identifierToken)
	if matched.Code != identifierCode {
		return "", p.cursor.NewError(identifierToken)
	}
	return matched.Text(p.cursor), nil
}

func (p *lineParser) register() (int, error) {
	p.skip()
	matched := p.cursor.MatchOne(registerToken)
	if matched.Code != registerCode {
		return 0, p.cursor.NewError(registerToken)
	}
	return int(matched.Text(p.cursor)[1] - '0'), nil
}

func (p *lineParser) number() (int, error) {
	p.skip()
	matched := p.cursor.MatchOne(numberToken)
	if matched.Code != numberCode {
		return 0, p.cursor.NewError(numberToken)
	}
	return strconv.Atoi(strings.TrimPrefix(matched.Text(p.cursor), "+"))
}

// operand matches a number or an identifier
func (p *lineParser) operand() (string, error) {
	p.skip()
	matched := p.cursor.MatchAny(numberToken, identifierToken)
	switch matched.Code {
	case numberCode, identifierCode:
		return matched.Text(p.cursor), nil
	}
	return "", p.cursor.NewError(numberToken, identifierToken)
}

func (p *lineParser) comma() error {
	p.skip()
	if p.cursor.MatchOne(commaToken).Code != commaCode {
		return p.cursor.NewError(commaToken)
	}
	return nil
}
