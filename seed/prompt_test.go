package seed_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kasuganosora/coffeemon-seed/seed"
	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"  y  \r\n", true},
		{"y", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"sim\n", false},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got := seed.Confirm(strings.NewReader(tc.input), &out, "Continue?")
		assert.Equal(t, tc.want, got, "input %q", tc.input)
		assert.True(t, strings.HasPrefix(out.String(), "Continue? (y/N): "))
	}
}
