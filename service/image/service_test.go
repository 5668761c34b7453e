package image

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

const deadlockImage = `
memory:
  200: -1
  201: ${env.NUCLEUS_SEM}
programs:
  init: |
    set d3, 1
    set d4, 200
    sys 3
init:
  text: init
  supervisor: true
`

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, "mem://localhost/images/deadlock.yaml", file.DefaultFileOsMode, strings.NewReader(deadlockImage)))
	require.NoError(t, fs.Upload(ctx, "mem://localhost/images/broken.yaml", file.DefaultFileOsMode, strings.NewReader("programs: {}\n")))
	require.NoError(t, os.Setenv("NUCLEUS_SEM", "40"))
	defer os.Unsetenv("NUCLEUS_SEM")

	testCases := []struct {
		description string
		URL         string
		expectName  string
		expectErr   bool
	}{
		{description: "explicit extension", URL: "mem://localhost/images/deadlock.yaml", expectName: "deadlock"},
		{description: "default extension", URL: "mem://localhost/images/deadlock", expectName: "deadlock"},
		{description: "missing", URL: "mem://localhost/images/none.yaml", expectErr: true},
		{description: "invalid", URL: "mem://localhost/images/broken.yaml", expectErr: true},
	}
	srv := New(fs)
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			img, err := srv.Load(ctx, testCase.URL)
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectName, img.Name)
			assert.Equal(t, 40, img.Memory[201])
		})
	}
}

func TestExpandEnv(t *testing.T) {
	testCases := []struct {
		description string
		env         map[string]string
		input       string
		expect      string
	}{
		{description: "no expressions", input: "just a plain string", expect: "just a plain string"},
		{description: "single expression", env: map[string]string{"FOO": "bar"}, input: "value is ${env.FOO}", expect: "value is bar"},
		{description: "multiple expressions", env: map[string]string{"A": "1", "B": "2"}, input: "${env.A}-${env.B}-${env.A}", expect: "1-2-1"},
		{description: "unset variable", input: "unset=${env.NOTSET}-end", expect: "unset=-end"},
		{description: "missing closing brace", env: map[string]string{"X": "x"}, input: "start ${env.X and ${env.Y} end", expect: "start ${env.X and  end"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			for _, key := range []string{"FOO", "A", "B", "X", "Y", "NOTSET"} {
				_ = os.Unsetenv(key)
			}
			for k, v := range testCase.env {
				_ = os.Setenv(k, v)
			}
			assert.Equal(t, testCase.expect, expandEnv(testCase.input))
		})
	}
}
