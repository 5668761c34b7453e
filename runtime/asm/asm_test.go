package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/nucleus/model/device"
	"github.com/viant/nucleus/model/trap"
)

func TestAssemble(t *testing.T) {
	testCases := []struct {
		description string
		source      string
		expect      []*Instruction
		expectLabel map[string]int
	}{
		{
			description: "registers and numbers",
			source: `
# acquire then release
set d3, 1
set d4,200
add D2, -5
sys 3`,
			expect: []*Instruction{
				{Op: Set, Reg: 3, Value: 1, Line: 3},
				{Op: Set, Reg: 4, Value: 200, Line: 4},
				{Op: Add, Reg: 2, Value: -5, Line: 5},
				{Op: Sys, Value: 3, Line: 6},
			},
			expectLabel: map[string]int{},
		},
		{
			description: "labels and jumps",
			source: `loop:  work 1000   # compute
  add d1, -1
  jnz d1, loop
done:
  jmp done`,
			expect: []*Instruction{
				{Op: Work, Value: 1000, Line: 1},
				{Op: Add, Reg: 1, Value: -1, Line: 2},
				{Op: Jnz, Reg: 1, Label: "loop", Target: 0, Line: 3},
				{Op: Jmp, Label: "done", Target: 3, Line: 5},
			},
			expectLabel: map[string]int{"loop": 0, "done": 3},
		},
		{
			description: "devices faults and state loads",
			source: `io disk2
io 0
fault mm
fault prog
ldst 300`,
			expect: []*Instruction{
				{Op: IO, Device: device.ID(9), Line: 1},
				{Op: IO, Device: device.ID(0), Line: 2},
				{Op: Fault, Class: trap.Memory, Line: 3},
				{Op: Fault, Class: trap.Program, Line: 4},
				{Op: Ldst, Value: 300, Line: 5},
			},
			expectLabel: map[string]int{},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			program, err := Assemble("test", testCase.source)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, program.Instructions)
			assert.Equal(t, testCase.expectLabel, program.Labels)
		})
	}
}

func TestAssemble_Errors(t *testing.T) {
	testCases := []struct {
		description string
		source      string
	}{
		{description: "unknown instruction", source: "push d1"},
		{description: "missing comma", source: "set d1 5"},
		{description: "bad register", source: "set d8, 5"},
		{description: "undefined label", source: "jmp nowhere"},
		{description: "duplicate label", source: "a: work 1\na: work 2"},
		{description: "trailing operand", source: "sys 3 4"},
		{description: "unknown device", source: "io tape0"},
		{description: "unknown fault", source: "fault bus"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			_, err := Assemble("bad", testCase.source)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestProgram_At(t *testing.T) {
	program, err := Assemble("p", "work 5\nsys 2")
	require.NoError(t, err)
	instruction, ok := program.At(1)
	assert.True(t, ok)
	assert.Equal(t, Sys, instruction.Op)
	_, ok = program.At(2)
	assert.False(t, ok)
}
