package importer

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/spritelab/spritesem/pkg/geometry"
	"github.com/spritelab/spritesem/pkg/types"
)

// Position is the coarse location of a region within the sprite.
type Position int

const (
	PositionTopCenter Position = iota // hair region
	PositionCenter                    // face/body center
	PositionBottom                    // feet/base
	PositionEdge                      // border
	PositionTopCorner                 // hair edge or accessory
	PositionSurrounding               // background
)

// NamingHint suggests a semantic token name based on detected features.
type NamingHint struct {
	Token         string
	SuggestedName string
	Reason        string
}

// AnalyzePosition determines where a region sits within the sprite and how
// confident that placement is.
func AnalyzePosition(pixels geometry.PixelSet, width, height int) (Position, float64) {
	if len(pixels) == 0 {
		return PositionEdge, 0.0
	}

	coverage := float64(len(pixels)) / float64(width*height)
	if coverage > 0.5 {
		return PositionSurrounding, 0.9
	}

	cx, cy, _ := geometry.Centroid(pixels)
	normX := cx / float64(width)
	normY := cy / float64(height)

	var touchesLeft, touchesRight, touchesTop, touchesBottom bool
	for p := range pixels {
		if p.X == 0 {
			touchesLeft = true
		}
		if p.X == width-1 {
			touchesRight = true
		}
		if p.Y == 0 {
			touchesTop = true
		}
		if p.Y == height-1 {
			touchesBottom = true
		}
	}
	edgeCount := 0
	for _, touches := range []bool{touchesLeft, touchesRight, touchesTop, touchesBottom} {
		if touches {
			edgeCount++
		}
	}
	if edgeCount >= 2 && coverage > 0.15 {
		return PositionSurrounding, 0.8
	}

	isCenterX := normX >= 0.25 && normX < 0.75
	isTop := normY < 0.33
	isMiddle := normY >= 0.33 && normY < 0.66
	isBottom := normY >= 0.66

	switch {
	case isCenterX && isTop:
		return PositionTopCenter, 0.7
	case isCenterX && isMiddle:
		return PositionCenter, 0.7
	case isCenterX && isBottom:
		return PositionBottom, 0.7
	case isTop:
		return PositionTopCorner, 0.6
	default:
		return PositionEdge, 0.5
	}
}

// GenerateNamingHints suggests semantic token names from position, color,
// role and size. Tokens whose current name is already close to the
// suggestion are skipped. Output is sorted by token for deterministic
// serialization.
func GenerateNamingHints(
	roles map[string]types.Role,
	tokenPixels map[string]geometry.PixelSet,
	tokenColors map[string]color.RGBA,
	width, height int,
) []NamingHint {
	var hints []NamingHint
	totalPixels := width * height

	for token, pixels := range tokenPixels {
		if token == "{_}" {
			continue
		}

		var clr *color.RGBA
		if c, ok := tokenColors[token]; ok {
			clr = &c
		}
		var role *types.Role
		if r, ok := roles[token]; ok {
			role = &r
		}

		position, positionConfidence := AnalyzePosition(pixels, width, height)
		size := len(pixels)
		coverage := float64(size) / float64(totalPixels)

		suggested, reason, ok := suggestName(position, positionConfidence, clr, role, size, coverage)
		if !ok || suggested == token {
			continue
		}
		// A token renamed by the user to something close to the
		// suggestion does not need the same advice again.
		if levenshtein.ComputeDistance(stripBraces(token), stripBraces(suggested)) <= 1 {
			continue
		}
		hints = append(hints, NamingHint{Token: token, SuggestedName: suggested, Reason: reason})
	}

	sort.Slice(hints, func(i, j int) bool { return hints[i].Token < hints[j].Token })
	return hints
}

func stripBraces(token string) string {
	return strings.TrimSuffix(strings.TrimPrefix(token, "{"), "}")
}

func suggestName(
	position Position,
	positionConfidence float64,
	clr *color.RGBA,
	role *types.Role,
	size int,
	coverage float64,
) (string, string, bool) {
	if coverage > 0.4 || position == PositionSurrounding {
		return "{bg}", "Large coverage, likely background", true
	}

	if clr != nil {
		if isSkinTone(*clr) {
			switch {
			case position == PositionCenter:
				return "{face}", "Skin tone in center region", true
			case position == PositionTopCenter:
				return "{skin}", "Skin tone in upper region", true
			case coverage > 0.05:
				return "{skin}", "Detected skin tone color", true
			}
		}

		if isDarkColor(*clr) {
			if position == PositionTopCenter {
				return "{hair}", "Dark color in top center", true
			}
			if size <= 6 && position == PositionCenter {
				return "{eye}", "Small dark region in center", true
			}
			if role != nil && *role == types.RoleBoundary {
				return "{outline}", "Dark boundary region", true
			}
			if role != nil && *role == types.RoleShadow {
				return "{shadow}", "Dark shadow region", true
			}
			if position == PositionEdge {
				return "{outline}", "Dark edge region", true
			}
		}

		if isLightColor(*clr) {
			if role != nil && *role == types.RoleHighlight {
				return "{highlight}", "Light highlight region", true
			}
			if size <= 4 {
				return "{gleam}", "Small light region (reflection)", true
			}
		}
	}

	if size == 1 {
		return "{dot}", "Single pixel feature", true
	}
	if size <= 4 {
		if position == PositionCenter {
			return "{eye}", "Small centered feature", true
		}
		return "{detail}", "Small detail region", true
	}

	switch {
	case position == PositionTopCenter && positionConfidence > 0.6:
		return "{top}", "Top center region", true
	case position == PositionCenter && positionConfidence > 0.6:
		return "{body}", "Central body region", true
	case position == PositionBottom && positionConfidence > 0.6:
		return "{base}", "Bottom base region", true
	}

	if role != nil {
		var name string
		switch *role {
		case types.RoleBoundary:
			name = "{outline}"
		case types.RoleAnchor:
			name = "{marker}"
		case types.RoleFill:
			name = "{fill}"
		case types.RoleShadow:
			name = "{shadow}"
		default:
			name = "{highlight}"
		}
		return name, fmt.Sprintf("Detected as %s role", *role), true
	}
	return "", "", false
}
