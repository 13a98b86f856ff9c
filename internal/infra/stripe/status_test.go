package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"active":             "active",
		"trialing":           "active",
		"past_due":           "past_due",
		"unpaid":             "past_due",
		"canceled":           "cancelled",
		"incomplete_expired": "cancelled",
		"incomplete":         "inactive",
		"paused":             "inactive",
		"":                   "inactive",
		"  active  ":         "active",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeStatus(in), "input %q", in)
	}
}
