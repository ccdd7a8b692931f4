package voxeltrace

import (
	"fmt"
	"log/slog"
	"strings"
)

type Category uint8

const (
	Hit          Category = iota // primary ray hit a voxel
	Miss                         // primary ray escaped to the sky
	SunProbe                     // sun shadow probe cast
	SunBlocked                   // sun shadow probe occluded
	AOProbe                      // ambient occlusion probe cast
	AOBlocked                    // ambient occlusion probe occluded
	LightProbe                   // point light shadow probe cast
	LightBlocked                 // point light shadow probe occluded
	numCategories
)

var categoryNames = [numCategories]string{
	"hit", "miss", "sun_probe", "sun_blocked", "ao_probe", "ao_blocked", "light_probe", "light_blocked",
}

func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// RayStats counts rays per category. Each tile keeps its own and the totals are
// merged under the framebuffer lock.
type RayStats [numCategories]uint64

func (s *RayStats) inc(c Category) { s[c]++ }

func (s *RayStats) merge(o *RayStats) {
	for i := range s {
		s[i] += o[i]
	}
}

// Total returns the number of rays of all kinds.
func (s RayStats) Total() uint64 {
	var n uint64
	for _, v := range s {
		n += v
	}
	return n
}

func (s RayStats) String() string {
	var sb strings.Builder
	for i, v := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%d", Category(i), v)
	}
	return sb.String()
}

// LogValue renders the counters as a slog group.
func (s RayStats) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, numCategories)
	for i, v := range s {
		attrs = append(attrs, slog.Uint64(Category(i).String(), v))
	}
	return slog.GroupValue(attrs...)
}
