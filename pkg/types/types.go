// Package types defines the shared value types of the sprite analysis
// engine: semantic roles, relationship kinds, and region inputs.
package types

import (
	"fmt"
	"image/color"

	"github.com/spritelab/spritesem/pkg/geometry"
)

// Role is the semantic role of a sprite region.
type Role int

const (
	// RoleBoundary marks thin regions hugging the sprite edges.
	RoleBoundary Role = iota
	// RoleAnchor marks tiny regions (eyes, markers) that must stay sharp.
	RoleAnchor
	// RoleFill marks large interior regions.
	RoleFill
	// RoleShadow marks regions darker than their neighbors.
	RoleShadow
	// RoleHighlight marks regions lighter than their neighbors.
	RoleHighlight
)

// String returns the role's wire name, used in palette metadata.
func (r Role) String() string {
	switch r {
	case RoleBoundary:
		return "boundary"
	case RoleAnchor:
		return "anchor"
	case RoleFill:
		return "fill"
	case RoleShadow:
		return "shadow"
	case RoleHighlight:
		return "highlight"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler for JSON/YAML output.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseRole parses a wire-format role name.
func ParseRole(s string) (Role, error) {
	switch s {
	case "boundary":
		return RoleBoundary, nil
	case "anchor":
		return RoleAnchor, nil
	case "fill":
		return RoleFill, nil
	case "shadow":
		return RoleShadow, nil
	case "highlight":
		return RoleHighlight, nil
	default:
		return 0, fmt.Errorf("unknown role: %q", s)
	}
}

// RelationshipKind is the kind of a pairwise semantic relationship.
type RelationshipKind int

const (
	// DerivesFrom: one region's color is a lightness-only variant of another's.
	DerivesFrom RelationshipKind = iota
	// ContainedWithin: one region sits inside another.
	ContainedWithin
	// AdjacentTo: two regions share a boundary.
	AdjacentTo
	// PairedWith: two regions mirror each other about the vertical centerline.
	PairedWith
)

// String returns the kind's wire name, used in palette metadata.
func (k RelationshipKind) String() string {
	switch k {
	case DerivesFrom:
		return "derives-from"
	case ContainedWithin:
		return "contained-within"
	case AdjacentTo:
		return "adjacent-to"
	case PairedWith:
		return "paired-with"
	default:
		return fmt.Sprintf("relationship(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler for JSON/YAML output.
func (k RelationshipKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Region is a named pixel set with its resolved color. Regions are value
// inputs to the analysis; the engine never mutates them. A region's identity
// is its name, which must be unique within one batch call.
type Region struct {
	Name   string
	Pixels geometry.PixelSet
	Color  color.RGBA
}
