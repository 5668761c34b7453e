package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/nucleus/model/trap"
)

func TestKernel_PassUp(t *testing.T) {
	testCases := []struct {
		description   string
		class         trap.Class
		raise         func(f *fixture)
		expectRunning string
		expectCause   trap.Cause
		expectSysNo   int
	}{
		{
			description: "system call above 8",
			class:       trap.System,
			raise: func(f *fixture) {
				f.sys(9, 0, 0, 0)
			},
			expectRunning: "handler",
			expectSysNo:   9,
		},
		{
			description: "memory trap",
			class:       trap.Memory,
			raise: func(f *fixture) {
				s := f.machine.loaded.Clone()
				s.Cause = trap.Address
				s.SysNo = 0
				f.kernel.Trap(trap.Memory, s)
			},
			expectRunning: "handler",
			expectCause:   trap.Address,
		},
		{
			description: "privileged call in user mode",
			class:       trap.Program,
			raise: func(f *fixture) {
				f.machine.loaded.Status.Supervisor = false
				f.sys(trap.Create, 0, 0, 100)
			},
			expectRunning: "handler",
			expectCause:   trap.Privileged,
			expectSysNo:   trap.Create,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			f := newFixture(t, DefaultConfig())
			f.boot("p1")
			f.area(310, program("handler"))
			f.sys(trap.TrapVector, int(testCase.class), 300, 310)
			require.Equal(t, "p1", f.running())

			testCase.raise(f)
			assert.Equal(t, testCase.expectRunning, f.running())
			old, err := f.mem.LoadState(300)
			require.NoError(t, err)
			assert.Equal(t, "p1", old.Text)
			assert.Equal(t, testCase.expectCause, old.Cause)
			assert.Equal(t, testCase.expectSysNo, old.SysNo)
			assert.Contains(t, f.events, "pid 1: "+testCase.class.String()+" trap passed up")
		})
	}
}

func TestKernel_PassUpWithoutVector(t *testing.T) {
	testCases := []struct {
		description  string
		raise        func(f *fixture)
		expectReason string
	}{
		{
			description:  "system call above 8",
			raise:        func(f *fixture) { f.sys(12, 0, 0, 0) },
			expectReason: "pid 1 terminated: unhandled system trap",
		},
		{
			description: "privileged call in user mode",
			raise: func(f *fixture) {
				f.machine.loaded.Status.Supervisor = false
				f.sys(trap.SemOp, 0, 0, 0)
			},
			expectReason: "pid 1 terminated: unhandled program trap (privileged)",
		},
		{
			description:  "invalid trap class",
			raise:        func(f *fixture) { f.sys(trap.TrapVector, 3, 300, 310) },
			expectReason: "pid 1 terminated: protocol violation: trap class 3",
		},
		{
			description:  "vector area outside memory",
			raise:        func(f *fixture) { f.sys(trap.TrapVector, 0, 300, 100000) },
			expectReason: "pid 1 terminated: protocol violation: program vector areas 300/100000",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			f := newFixture(t, DefaultConfig())
			f.boot("p1")
			testCase.raise(f)
			assert.Contains(t, f.events, testCase.expectReason)
			status, _ := f.kernel.Status()
			assert.Equal(t, Normal, status)
		})
	}
}

func TestKernel_DoubleVectorInstall(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.boot("p1")
	f.sys(trap.TrapVector, int(trap.System), 300, 310)
	assert.Equal(t, "p1", f.running())
	vector := f.kernel.Process(1).Vector(trap.System)
	require.NotNil(t, vector)
	assert.Equal(t, trap.Vector{Old: 300, New: 310}, *vector)

	f.sys(trap.TrapVector, int(trap.Memory), 320, 330)
	assert.Equal(t, "p1", f.running(), "other class is fine")

	f.sys(trap.TrapVector, int(trap.System), 340, 350)
	assert.Contains(t, f.events, "pid 1 terminated: trap vector already installed: system")
	assert.Equal(t, Normal, f.machine.halted)
}
