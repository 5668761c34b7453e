package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/nucleus/model/device"
)

const bootImage = `
name: pingpong
config:
  quantum: 2000
memory:
  40: 1
  200: -1
  201: 40
areas:
  100:
    text: child
    supervisor: true
    registers:
      d3: 1
      D4: 200
programs:
  init: |
    sys 2
  child: |
    sys 2
devices:
  disk0:
    latency: 300
    length: 512
init:
  text: init
  supervisor: true
`

func TestDecode(t *testing.T) {
	img, err := Decode([]byte(bootImage))
	require.NoError(t, err)
	require.NoError(t, img.Validate())
	assert.Equal(t, "pingpong", img.Name)
	assert.Equal(t, int64(2000), img.Config.Quantum)
	assert.Equal(t, map[int]int{40: 1, 200: -1, 201: 40}, img.Memory)

	child, err := img.Areas[100].State()
	require.NoError(t, err)
	assert.Equal(t, "child", child.Text)
	assert.True(t, child.Status.Supervisor)
	assert.True(t, child.Status.Interrupts)
	assert.Equal(t, 1, child.D[3])
	assert.Equal(t, 200, child.D[4])

	devices, err := img.DeviceBehaviors()
	require.NoError(t, err)
	assert.Equal(t, &Device{Latency: 300, Length: 512}, devices[device.ID(7)])
}

func TestImage_Validate(t *testing.T) {
	testCases := []struct {
		description string
		image       *Image
		expectErr   bool
	}{
		{
			description: "missing init",
			image:       &Image{Programs: map[string]string{"init": "sys 2"}},
			expectErr:   true,
		},
		{
			description: "undefined init program",
			image:       &Image{Init: &State{Text: "boot"}, Programs: map[string]string{"init": "sys 2"}},
			expectErr:   true,
		},
		{
			description: "bad register",
			image: &Image{
				Init:     &State{Text: "init", Registers: map[string]int{"a0": 1}},
				Programs: map[string]string{"init": "sys 2"},
			},
			expectErr: true,
		},
		{
			description: "unknown device",
			image: &Image{
				Init:     &State{Text: "init"},
				Programs: map[string]string{"init": "sys 2"},
				Devices:  map[string]*Device{"tape0": {}},
			},
			expectErr: true,
		},
		{
			description: "valid",
			image:       &Image{Init: &State{Text: "init"}, Programs: map[string]string{"init": "sys 2"}},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			err := testCase.image.Validate()
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
