package voxeltrace

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRayStats(t *testing.T) {
	var a, b RayStats
	a.inc(Hit)
	a.inc(SunProbe)
	b.inc(Hit)
	b.inc(Miss)
	a.merge(&b)
	assert.Equal(t, uint64(2), a[Hit])
	assert.Equal(t, uint64(1), a[Miss])
	assert.Equal(t, uint64(4), a.Total())
	assert.Contains(t, a.String(), "hit=2 miss=1 sun_probe=1")

	v := a.LogValue()
	assert.Equal(t, slog.KindGroup, v.Kind())
	assert.Len(t, v.Group(), int(numCategories))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "light_blocked", LightBlocked.String())
	assert.Equal(t, "category(200)", Category(200).String())
}
