package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestETATracker(t *testing.T) {
	tracker := newETATracker(3)

	assert.Equal(t, time.Duration(0), tracker.estimate(10), "no observations yet")

	tracker.observe(2 * time.Second)
	assert.Equal(t, 20*time.Second, tracker.estimate(10))

	tracker.observe(4 * time.Second)
	assert.Equal(t, 30*time.Second, tracker.estimate(10))

	// Window is 3: the next observation evicts the first.
	tracker.observe(6 * time.Second)
	tracker.observe(8 * time.Second)
	assert.Equal(t, 60*time.Second, tracker.estimate(10))

	assert.Equal(t, time.Duration(0), tracker.estimate(0), "nothing remaining")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{90 * time.Second, "1m 30s"},
		{59 * time.Minute, "59m 0s"},
		{3723 * time.Second, "1h 2m 3s"},
		{25 * time.Hour, "25h 0m 0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}
