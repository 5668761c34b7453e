package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/nucleus/service/dao"
)

func TestMatch(t *testing.T) {
	testCases := []struct {
		description string
		value       string
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no parameters", value: "normal", expect: true},
		{description: "single match", value: "normal", parameters: []*dao.Parameter{dao.NewParameter("Status", "normal")}, expect: true},
		{description: "single mismatch", value: "deadlock", parameters: []*dao.Parameter{dao.NewParameter("Status", "normal")}},
		{description: "any of", value: "panic", parameters: []*dao.Parameter{dao.NewParameter("Status", "deadlock", "panic")}, expect: true},
		{description: "other field", value: "panic", parameters: []*dao.Parameter{dao.NewParameter("Image", "boot")}, expect: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, Match("Status", testCase.value, testCase.parameters))
		})
	}
}
