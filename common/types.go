// package common contains common types and helpers that are used throughout this exporter. They are not interface-wrapped structs, just plain values
// and functions that express commonly used data-types and math.
package common

import (
	"fmt"
	"strings"
)

// Space selects the coordinate space transforms are read back in.
type Space string

const (
	// SpaceLocal reads transforms relative to the object's parent.
	SpaceLocal Space = "local"
	// SpaceWorld reads transforms with the whole parent chain applied.
	SpaceWorld Space = "world"
)

// UpAxis names the vertical axis of a source scene. Exported documents are always Y-up.
type UpAxis string

const (
	// UpAxisY means the source is already Y-up; values pass through unchanged.
	UpAxisY UpAxis = "y"
	// UpAxisZ means the source is Z-up and is converted to Y-up on readback.
	UpAxisZ UpAxis = "z"
)

// ParseSpace converts a case-insensitive string into a Space. The empty string maps to SpaceLocal.
func ParseSpace(s string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SpaceLocal):
		return SpaceLocal, nil
	case string(SpaceWorld):
		return SpaceWorld, nil
	default:
		return "", fmt.Errorf("unknown space %q", s)
	}
}

// ParseUpAxis converts a case-insensitive string into an UpAxis. The empty string maps to UpAxisY.
func ParseUpAxis(s string) (UpAxis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(UpAxisY):
		return UpAxisY, nil
	case string(UpAxisZ):
		return UpAxisZ, nil
	default:
		return "", fmt.Errorf("unknown up axis %q", s)
	}
}
