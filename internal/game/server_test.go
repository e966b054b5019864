package game

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "trimmed", in: "  Alice  ", want: "Alice"},
		{name: "blank", in: "   ", want: ""},
		{name: "short ascii kept", in: "Bob", want: "Bob"},
		{name: "long ascii capped", in: strings.Repeat("a", 40), want: strings.Repeat("a", 32)},
		{name: "arabic kept whole", in: "لاعب ماهر", want: "لاعب ماهر"},
		{name: "long arabic capped on a rune boundary", in: strings.Repeat("م", 40), want: strings.Repeat("م", 32)},
		{name: "emoji capped on a rune boundary", in: strings.Repeat("🎯", 33), want: strings.Repeat("🎯", 32)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cleanName(tc.in)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
