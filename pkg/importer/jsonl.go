package importer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ToJSONL serializes the result as two JSON lines: a palette object and a
// sprite object with per-token regions. Analysis metadata is omitted; use
// ToStructuredJSONL for the annotated form.
func (r *Result) ToJSONL() (string, error) {
	paletteObj := map[string]any{
		"type":   "palette",
		"name":   r.Name + "_palette",
		"colors": r.Palette,
	}

	regions := make(map[string]any, len(r.Regions))
	if r.StructuredRegions != nil {
		for token, region := range r.StructuredRegions {
			regions[token] = region.toValue()
		}
	} else {
		for token, points := range r.Regions {
			regions[token] = map[string]any{"points": points}
		}
	}

	spriteObj := map[string]any{
		"type":    "sprite",
		"name":    r.Name,
		"size":    [2]int{r.Width, r.Height},
		"palette": r.Name + "_palette",
		"regions": regions,
	}

	return marshalLines(paletteObj, spriteObj)
}

// ToStructuredJSONL serializes the result with analysis metadata: role and
// relationship maps on the palette line, z-order on regions, and optional
// half-sprite filtering with a symmetry marker on the sprite line.
func (r *Result) ToStructuredJSONL() (string, error) {
	paletteObj := map[string]any{
		"type":   "palette",
		"name":   r.Name + "_palette",
		"colors": r.Palette,
	}

	if r.Analysis != nil {
		if len(r.Analysis.Roles) > 0 {
			roleNames := make(map[string]string, len(r.Analysis.Roles))
			for token, role := range r.Analysis.Roles {
				roleNames[token] = role.String()
			}
			paletteObj["roles"] = roleNames
		}
		if len(r.Analysis.Relationships) > 0 {
			rels := make(map[string]any, len(r.Analysis.Relationships))
			for _, rel := range r.Analysis.Relationships {
				rels[rel.Source] = map[string]string{
					"type":   rel.Kind.String(),
					"target": rel.Target,
				}
			}
			paletteObj["relationships"] = rels
		}
	}

	applyHalf := r.HalfSprite && r.Analysis != nil && r.Analysis.Symmetry != nil

	regions := make(map[string]any, len(r.Regions))
	if r.StructuredRegions != nil {
		for token, region := range r.StructuredRegions {
			if applyHalf {
				region = FilterStructuredHalf(region, *r.Analysis.Symmetry, r.Width, r.Height)
				if region.isEmptyPoints() {
					continue
				}
			}
			obj := region.toValue()
			r.attachZ(obj, token)
			regions[token] = obj
		}
	} else {
		for token, points := range r.Regions {
			if applyHalf {
				points = FilterPointsHalf(points, *r.Analysis.Symmetry, r.Width, r.Height)
				if len(points) == 0 {
					continue
				}
			}
			obj := map[string]any{"points": points}
			r.attachZ(obj, token)
			regions[token] = obj
		}
	}

	spriteObj := map[string]any{
		"type":    "sprite",
		"name":    r.Name,
		"size":    [2]int{r.Width, r.Height},
		"palette": r.Name + "_palette",
		"regions": regions,
	}
	if applyHalf {
		spriteObj["symmetry"] = r.Analysis.Symmetry.String()
	}

	return marshalLines(paletteObj, spriteObj)
}

func (r *Result) attachZ(obj map[string]any, token string) {
	if r.Analysis == nil || r.Analysis.ZOrder == nil {
		return
	}
	if z, ok := r.Analysis.ZOrder[token]; ok {
		obj["z"] = z
	}
}

func marshalLines(objs ...any) (string, error) {
	lines := make([]string, 0, len(objs))
	for _, obj := range objs {
		data, err := json.Marshal(obj)
		if err != nil {
			return "", fmt.Errorf("marshal jsonl: %w", err)
		}
		lines = append(lines, string(data))
	}
	return strings.Join(lines, "\n"), nil
}
