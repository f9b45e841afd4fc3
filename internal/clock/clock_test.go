package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock_Advance(t *testing.T) {
	start := time.Date(2026, 10, 1, 8, 0, 0, 0, time.FixedZone("MYT", 8*3600))
	c := NewFakeClock(start)
	assert.Equal(t, time.UTC, c.Now().Location())

	c.Advance(48 * time.Hour)
	assert.Equal(t, "2026-10-03", c.Now().Format("2006-01-02"))
}

func TestSystemClock_IsUTC(t *testing.T) {
	var c Clock = SystemClock{}
	assert.Equal(t, time.UTC, c.Now().Location())
}
