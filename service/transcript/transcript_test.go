package transcript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/nucleus/runtime/kernel"
)

func TestRecorder(t *testing.T) {
	testCases := []struct {
		description string
		timestamps  bool
		expect      string
	}{
		{description: "messages", expect: "pid 1 created\nhalt: end of program\n"},
		{description: "timestamps", timestamps: true, expect: "         0 pid 1 created\n       250 halt: end of program\n"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			recorder := NewRecorder(testCase.timestamps)
			var listener kernel.Listener = recorder.Listen
			listener(&kernel.Event{Pid: 1, Type: kernel.EventCreated, Message: "pid 1 created"})
			listener(&kernel.Event{Time: 250, Type: kernel.EventHalted, Message: "halt: end of program"})
			assert.Equal(t, testCase.expect, recorder.String())
			assert.Len(t, recorder.Lines(), 2)
		})
	}
}

func TestRecorder_Save(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	recorder := NewRecorder(false)
	recorder.Listen(&kernel.Event{Message: "halt: deadlock"})
	URL := "mem://localhost/transcript/out.txt"
	require.NoError(t, recorder.Save(ctx, fs, URL))
	data, err := fs.DownloadWithURL(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, "halt: deadlock\n", string(data))
}

func TestCompare(t *testing.T) {
	testCases := []struct {
		description   string
		expected      string
		actual        string
		expectEqual   bool
		expectAdded   int
		expectRemoved int
	}{
		{
			description: "identical",
			expected:    "pid 1 created\nhalt: end of program\n",
			actual:      "pid 1 created\nhalt: end of program\n",
			expectEqual: true,
		},
		{
			description:   "changed and appended",
			expected:      "a\nb\nc\n",
			actual:        "a\nx\nc\nd\n",
			expectAdded:   2,
			expectRemoved: 1,
		},
		{
			description:   "removed",
			expected:      "a\nb\nc\n",
			actual:        "a\nc\n",
			expectRemoved: 1,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			result, err := Compare(testCase.expected, testCase.actual)
			require.NoError(t, err)
			assert.Equal(t, testCase.expectEqual, result.Equal())
			assert.Equal(t, testCase.expectAdded, result.Stats.Added)
			assert.Equal(t, testCase.expectRemoved, result.Stats.Removed)
			if !testCase.expectEqual {
				assert.Contains(t, result.Diff, "--- expected")
				assert.Equal(t, 1, result.Hunks)
			}
		})
	}
}
