package ebiten

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameDelta(t *testing.T) {
	now := time.Now()

	assert.InDelta(t, 1000.0/60, frameDelta(time.Time{}, now, 60), 1e-9)
	assert.Equal(t, 16.0, frameDelta(now.Add(-16*time.Millisecond), now, 60))

	assert.Equal(t, math.SmallestNonzeroFloat64, frameDelta(now, now, 60), "same timestamp")
	assert.Equal(t, math.SmallestNonzeroFloat64, frameDelta(now.Add(time.Millisecond), now, 60), "clock went backwards")
	assert.Equal(t, math.SmallestNonzeroFloat64, frameDelta(time.Time{}, now, 0))
}
