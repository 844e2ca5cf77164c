package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseIntervalDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"15m", 15 * time.Minute},
		{"1h", time.Hour},
		{"4H", 4 * time.Hour},
		{"1d", 24 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{" 30m ", 30 * time.Minute},
	}
	for _, c := range cases {
		got, ok := ParseIntervalDuration(c.in)
		assert.True(t, ok, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseIntervalDurationInvalid(t *testing.T) {
	for _, in := range []string{"", "m", "0h", "-1h", "1x", "h1", "1.5h"} {
		_, ok := ParseIntervalDuration(in)
		assert.False(t, ok, "input %q", in)
	}
}
